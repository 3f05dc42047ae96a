package coverage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/specgap/internal/extract"
	"github.com/phobologic/specgap/internal/lang"
	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/parse"
)

type source struct {
	Path     string // as reported
	Language string
}

type analyzed struct {
	path    string
	methods []model.MethodEntry
}

type parserPair struct {
	lang   *lang.Language
	parser *sitter.Parser
}

// extractConcurrent parses and extracts every file, keeping input order.
// Files that cannot be read or analyzed are logged and dropped.
func extractConcurrent(ctx context.Context, root string, files []source, workers int, logger *slog.Logger) ([]analyzed, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]*analyzed, len(files))
	work := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for i := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			// Each goroutine gets its own parser
			parsers := make(map[string]*parserPair)

			for idx := range work {
				f := files[idx]
				pp, ok := parsers[f.Language]
				if !ok {
					l := lang.Languages[f.Language]
					if l == nil {
						logger.Warn("unsupported language", slog.String("file", f.Path), slog.String("language", f.Language))
						continue
					}
					pp = &parserPair{lang: l, parser: l.NewParser()}
					parsers[f.Language] = pp
				}

				methods, err := analyze(ctx, pp, filepath.Join(root, filepath.FromSlash(f.Path)))
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logger.Warn("skipping file", slog.String("file", f.Path), slog.Any("error", err))
					continue
				}
				logger.Debug("extracted", slog.String("file", f.Path), slog.Int("public_methods", len(methods)))
				results[idx] = &analyzed{path: f.Path, methods: methods}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []analyzed
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func analyze(ctx context.Context, pp *parserPair, path string) ([]model.MethodEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := parse.Parse(ctx, pp.lang, pp.parser, data)
	if err != nil {
		return nil, err
	}
	methods, err := extract.Extract(root)
	if err != nil {
		return nil, err
	}
	model.SortEntries(methods)
	return methods, nil
}
