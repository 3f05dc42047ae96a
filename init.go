package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/specgap/internal/config"
)

const (
	sentinelStart = "# specgap:start"
	sentinelEnd   = "# specgap:end"
)

// newInitCmd implements `specgap init`, which writes (or updates) the managed
// default block of a .specgap.toml file.
func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-.specgap.toml]",
		Short: "Write default settings to a .specgap.toml file",
		Long: `Write the default specgap settings to a config file. The settings are
wrapped in sentinel comments so they can be refreshed in place on subsequent
runs without touching surrounding content. Creates the file if it does not
exist. Keys set outside the managed block must not repeat keys inside it.

path-to-.specgap.toml defaults to ./` + config.FileName + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, dryRun, len(args) == 0, stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")

	return cmd
}

func runInit(path string, dryRun, defaultPath bool, stdout, stderr io.Writer) error {
	section, err := generateSection()
	if err != nil {
		return err
	}

	// --dry-run with no path: just print the section itself.
	if dryRun && defaultPath {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	existing, _ := os.ReadFile(path)
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote specgap defaults to %s\n", path)
	return nil
}

// generateSection returns the sentinel-wrapped default configuration block.
func generateSection() (string, error) {
	body, err := config.Default().Encode()
	if err != nil {
		return "", err
	}

	header := `# Managed by "specgap init"; rerun it to restore defaults.
# spec_dir        directory holding the companion *_spec.rb files
# strip_prefixes  path prefixes dropped when mapping app/x.rb to spec/x_spec.rb
# exclude         doublestar globs of files never checked
# ignore_methods  method names never reported
# base            git ref to diff against; empty checks every public method`

	return sentinelStart + "\n" + header + "\n" + strings.TrimRight(body, "\n") + "\n" + sentinelEnd, nil
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if len(content) == 0 {
		return section + "\n"
	}
	return content + "\n" + section + "\n"
}
