package extract

import (
	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/syntax"
)

// scopeMethods walks the body of a class or module in document order and
// returns its public methods, including those of nested scopes.
//
// Visibility is a local: a bare `private` hides the instance methods that
// follow it in this body only. Nested scopes and singleton blocks start
// their own walk with everything public.
func scopeMethods(scope *syntax.Node, parents Path) *Registry {
	path := parents.Extend(scope.Name)
	name := path.String()
	reg := NewRegistry()

	isPublic := true
	for _, stmt := range scope.Body() {
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case syntax.ClassDef, syntax.ModuleDef:
			reg.Merge(scopeMethods(stmt, path))
		case syntax.SingletonClassBlock:
			reg.Merge(singletonMethods(stmt, name))
		case syntax.Call:
			switch {
			case stmt.IsBareCall("private", 0):
				isPublic = false
			case stmt.IsBareCall("private_class_method", 1):
				// Only a literal symbol is understood; computed arguments are left alone.
				if arg := stmt.Children[0]; arg != nil && arg.Kind == syntax.Symbol {
					reg.Remove(name + "." + arg.Name)
				}
			}
		case syntax.MethodDef:
			if isPublic {
				reg.Add(model.MethodEntry{Scope: name, Name: stmt.Name, Instance: true, Line: stmt.Line})
			}
		case syntax.SingletonMethodDef:
			// Not gated on isPublic: `private` does not apply to `def self.x`.
			reg.Add(model.MethodEntry{Scope: name, Name: stmt.Name, Line: stmt.Line})
		case syntax.Sequence, syntax.Symbol, syntax.Other:
		}
	}
	return reg
}
