package extract

import "strings"

// Path is the chain of enclosing class and module names, outermost first.
// A Path is never modified after creation; Extend returns a copy.
type Path []string

// Extend returns a new path with name appended. p is left untouched, so
// sibling scopes built from the same parent never see each other's names.
func (p Path) Extend(name string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, name)
}

// String joins the path into a qualified name such as "Foo::Bar".
func (p Path) String() string {
	return strings.Join(p, "::")
}
