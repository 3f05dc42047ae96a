// Package extract computes the public methods declared by the classes and
// modules of a syntax tree, without evaluating anything.
//
// The rules are static and deliberately narrow:
//
//   - a bare `private` (no receiver, no arguments) hides the instance
//     methods defined after it in the same body;
//   - `def self.x` is always public;
//   - `private_class_method :x` retracts a previously seen `Scope.x`;
//   - `class << self` blocks contribute class-level methods and honor their
//     own `private`.
//
// Recursion depth follows the nesting depth of the source. Pathologically
// deep trees grow the goroutine stack accordingly; no explicit limit is
// applied.
package extract

import (
	"errors"
	"fmt"

	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/syntax"
)

// ErrInvalidRootKind is returned when the root node is neither a class,
// a module nor a sequence of top-level statements.
var ErrInvalidRootKind = errors.New("invalid root kind")

// Extract returns the public methods of every class and module reachable
// from root. Top-level content outside a class or module yields nothing.
// Entry order follows the source; use model.SortEntries for a stable order.
func Extract(root *syntax.Node) ([]model.MethodEntry, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidRootKind)
	}

	switch root.Kind {
	case syntax.ClassDef, syntax.ModuleDef:
		return scopeMethods(root, nil).Values(), nil
	case syntax.Sequence:
		var out []model.MethodEntry
		for _, child := range root.Children {
			if child.IsScope() {
				out = append(out, scopeMethods(child, nil).Values()...)
			}
		}
		return out, nil
	case syntax.SingletonClassBlock, syntax.MethodDef, syntax.SingletonMethodDef,
		syntax.Call, syntax.Symbol, syntax.Other:
	}
	return nil, fmt.Errorf("%w: %s at line %d", ErrInvalidRootKind, root.Kind, root.Line)
}
