package extract

import (
	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/syntax"
)

// singletonMethods collects the class-level methods defined in a
// `class << self` block. Plain defs inside the block belong to scope itself;
// the block adds no path segment. It keeps its own visibility flag, so a
// `private` outside the block never hides its methods and a `private`
// inside never leaks out.
//
// `def self.x` and nested `class << self` inside the block are not handled.
func singletonMethods(block *syntax.Node, scope string) *Registry {
	reg := NewRegistry()

	isPublic := true
	for _, stmt := range block.Body() {
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case syntax.Call:
			if stmt.IsBareCall("private", 0) {
				isPublic = false
			}
		case syntax.MethodDef:
			if isPublic {
				reg.Add(model.MethodEntry{Scope: scope, Name: stmt.Name, Line: stmt.Line})
			}
		case syntax.SingletonMethodDef, syntax.SingletonClassBlock:
		case syntax.ClassDef, syntax.ModuleDef, syntax.Sequence, syntax.Symbol, syntax.Other:
		}
	}
	return reg
}
