// Package parse turns source files into syntax trees using tree-sitter.
package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/specgap/internal/lang"
	"github.com/phobologic/specgap/internal/syntax"
)

// Parse parses source with parser and lowers the result through l.
// The parser must be created for the correct language.
// Empty source yields an empty Sequence.
func Parse(ctx context.Context, l *lang.Language, parser *sitter.Parser, source []byte) (*syntax.Node, error) {
	if len(source) == 0 {
		return &syntax.Node{Kind: syntax.Sequence, Line: 1}, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", l.Name, err)
	}
	defer tree.Close()

	return l.Lower(tree.RootNode(), source), nil
}
