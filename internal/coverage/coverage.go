// Package coverage reports public Ruby methods that lack a matching spec
// description.
package coverage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phobologic/specgap/internal/config"
	"github.com/phobologic/specgap/internal/discover"
	"github.com/phobologic/specgap/internal/gitdiff"
	"github.com/phobologic/specgap/internal/lang"
	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/specfile"
)

// ErrNoSpecDir is returned when the configured spec directory does not exist.
var ErrNoSpecDir = errors.New("spec directory is missing")

// Options configures a coverage check.
type Options struct {
	Root   string
	Config config.Config

	// Changes restricts the check to methods added by a diff.
	// Nil means every public method is checked.
	Changes gitdiff.Changes

	Workers int
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Check discovers the Ruby files under opts.Root, extracts their public
// methods and reports each one without a spec description. Only files with
// at least one checked method appear in the report.
func Check(ctx context.Context, opts Options) (*model.Report, error) {
	logger := opts.logger()
	cfg := opts.Config

	specRoot := filepath.Join(opts.Root, filepath.FromSlash(cfg.SpecDir))
	if info, err := os.Stat(specRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSpecDir, cfg.SpecDir)
	}

	entries, err := discover.Files(opts.Root, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	var files []source
	for _, e := range entries {
		if opts.Changes != nil {
			if _, ok := opts.Changes[e.Path]; !ok {
				continue
			}
		}
		files = append(files, source{Path: e.Path, Language: e.Language})
	}
	files = filterBySize(opts.Root, files, cfg.MaxFileSize, logger)
	logger.Debug("checking files", slog.Int("discovered", len(entries)), slog.Int("selected", len(files)))

	results, err := extractConcurrent(ctx, opts.Root, files, opts.Workers, logger)
	if err != nil {
		return nil, err
	}

	report := &model.Report{Root: opts.Root, Base: cfg.Base}
	for _, r := range results {
		methods := selectMethods(r, cfg, opts.Changes)
		if len(methods) == 0 {
			continue
		}
		fr, err := review(opts.Root, r.path, methods, cfg)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, fr)
	}
	return report, nil
}

// Methods extracts the public methods of the given files without looking
// for specs. Paths are used as given.
func Methods(ctx context.Context, paths []string, logger *slog.Logger) ([]model.FileReport, error) {
	if logger == nil {
		logger = Options{}.logger()
	}
	var files []source
	for _, p := range paths {
		name := lang.ForExtension(filepath.Ext(p))
		if name == "" {
			logger.Warn("unsupported file type", slog.String("file", p))
			continue
		}
		files = append(files, source{Path: p, Language: name})
	}

	results, err := extractConcurrent(ctx, "", files, 0, logger)
	if err != nil {
		return nil, err
	}
	reports := make([]model.FileReport, 0, len(results))
	for _, r := range results {
		reports = append(reports, model.FileReport{Path: r.path, Methods: r.methods})
	}
	return reports, nil
}

func selectMethods(r analyzed, cfg config.Config, changes gitdiff.Changes) []model.MethodEntry {
	var out []model.MethodEntry
	for _, m := range r.methods {
		if cfg.Ignored(m.Name) {
			continue
		}
		if changes != nil && !changes.Has(r.path, m.Name) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func review(root, file string, methods []model.MethodEntry, cfg config.Config) (model.FileReport, error) {
	specPath := specfile.PathFor(file, cfg.SpecDir, cfg.StripPrefixes)
	fr := model.FileReport{Path: file, SpecPath: specPath, Methods: methods}

	markers, err := specfile.Markers(filepath.Join(root, filepath.FromSlash(specPath)))
	if errors.Is(err, os.ErrNotExist) {
		fr.Warnings = append(fr.Warnings, model.Warning{
			File:    file,
			Message: fmt.Sprintf("No spec found for file %s.", file),
		})
		return fr, nil
	}
	if err != nil {
		return fr, fmt.Errorf("reading spec for %s: %w", file, err)
	}

	for _, m := range methods {
		if specfile.Covered(markers, m) {
			continue
		}
		fr.Warnings = append(fr.Warnings, model.Warning{
			File:    file,
			Line:    m.Line,
			Message: fmt.Sprintf("Missing spec for `%s`", m),
		})
	}
	return fr, nil
}

func filterBySize(root string, files []source, maxSize int, logger *slog.Logger) []source {
	var kept []source
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(f.Path)))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if maxSize > 0 && fi.Size() > int64(maxSize) {
			logger.Warn("skipped oversized file", slog.String("file", f.Path), slog.Int("max_bytes", maxSize))
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
