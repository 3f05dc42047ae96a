// Package gitdiff finds method definitions introduced by a change.
package gitdiff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// newMethodRe matches an added, indented `def name` or `def self.name` line.
var newMethodRe = regexp.MustCompile(`^\+\s+def \b(?:self\.)?([^(\s]+)`)

// Changes maps a post-change file path to the method names defined on its
// added lines.
type Changes map[string]map[string]struct{}

// Has reports whether method was added in file.
func (c Changes) Has(file, method string) bool {
	_, ok := c[file][method]
	return ok
}

func (c Changes) add(file, method string) {
	names, ok := c[file]
	if !ok {
		names = make(map[string]struct{})
		c[file] = names
	}
	names[method] = struct{}{}
}

// AddedMethods scans a unified diff. Paths come from the "+++" headers, so
// renamed files are keyed by their new name and deleted files are skipped.
func AddedMethods(r io.Reader) (Changes, error) {
	changes := make(Changes)
	var current string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "diff --git "):
			current = ""
			continue
		case strings.HasPrefix(line, "+++ "):
			current = headerPath(strings.TrimPrefix(line, "+++ "))
			continue
		}
		if current == "" {
			continue
		}
		if m := newMethodRe.FindStringSubmatch(line); m != nil {
			changes.add(current, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	return changes, nil
}

func headerPath(header string) string {
	if i := strings.IndexByte(header, '\t'); i >= 0 {
		header = header[:i]
	}
	if header == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(header, "b/")
}

// Diff runs `git diff` against base in root and scans the Ruby changes.
// Paths are relative to root, even when root is below the repository top level.
func Diff(ctx context.Context, root, base string) (Changes, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--no-color", "--no-ext-diff", "--relative", "-M", base, "--", "*.rb")
	cmd.Dir = root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff %s: %w: %s", base, err, strings.TrimSpace(stderr.String()))
	}
	return AddedMethods(bytes.NewReader(out))
}
