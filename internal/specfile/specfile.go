// Package specfile locates companion spec files and reads the method
// descriptions they contain.
package specfile

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/phobologic/specgap/internal/model"
)

// describeRe matches `describe "#name"`, `describe '.name'` and the
// qualified `describe "Foo::Bar#name"` forms, with or without parentheses.
var describeRe = regexp.MustCompile(`\bdescribe\s*\(?\s*["']((?:[A-Z]\w*(?:::[A-Z]\w*)*)?[#.][^"']+)["']`)

// PathFor maps a repo-relative source path to its conventional spec path:
// the first matching prefix in strip is removed, ".rb" becomes "_spec.rb",
// and the result is placed under specDir.
//
//	app/models/user.rb -> spec/models/user_spec.rb
//	lib/foo.rb         -> spec/lib/foo_spec.rb
func PathFor(file, specDir string, strip []string) string {
	rel := strings.TrimPrefix(file, "./")
	for _, prefix := range strip {
		if strings.HasPrefix(rel, prefix) {
			rel = strings.TrimPrefix(rel, prefix)
			break
		}
	}
	rel = strings.TrimSuffix(rel, ".rb") + "_spec.rb"
	return path.Join(specDir, rel)
}

// Markers returns the set of method descriptions found in a spec file.
func Markers(filePath string) (map[string]struct{}, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	markers := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, m := range describeRe.FindAllStringSubmatch(scanner.Text(), -1) {
			markers[m[1]] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	return markers, nil
}

// Covered reports whether e is described in markers, either by its
// prefixed name ("#run") or its full display key ("Foo#run").
func Covered(markers map[string]struct{}, e model.MethodEntry) bool {
	if _, ok := markers[e.Prefixed()]; ok {
		return true
	}
	_, ok := markers[e.String()]
	return ok
}
