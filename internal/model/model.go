// Package model defines core data structures for specgap.
package model

import (
	"sort"
	"strconv"
)

// MethodEntry is a publicly visible method found in a class or module body.
type MethodEntry struct {
	Scope    string // Fully-qualified class or module name, e.g. "Foo::Bar"
	Name     string
	Instance bool
	Line     int
}

// Separator returns "#" for instance methods and "." for class-level methods.
func (m MethodEntry) Separator() string {
	if m.Instance {
		return "#"
	}
	return "."
}

// Prefixed returns the method name with its visibility marker, e.g. "#run".
func (m MethodEntry) Prefixed() string {
	return m.Separator() + m.Name
}

// String returns the display key, e.g. "Foo::Bar#run" or "Foo.create".
func (m MethodEntry) String() string {
	return m.Scope + m.Separator() + m.Name
}

// SortEntries orders entries by scope, then name, then instance methods first.
func SortEntries(entries []MethodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Instance && !b.Instance
	})
}

// Warning is a single coverage problem reported for a file.
// Line is 0 for file-level warnings.
type Warning struct {
	File    string
	Line    int
	Message string
}

// Location formats the warning position as "file:line" or "file".
func (w Warning) Location() string {
	if w.Line > 0 {
		return w.File + ":" + strconv.Itoa(w.Line)
	}
	return w.File
}

// FileReport holds the checked methods and warnings for one source file.
type FileReport struct {
	Path     string
	SpecPath string
	Methods  []MethodEntry
	Warnings []Warning
}

// Report is the complete result of a run, ready for rendering.
type Report struct {
	Root  string
	Base  string
	Files []FileReport
}

// Warnings flattens the warnings of every file in report order.
func (r *Report) Warnings() []Warning {
	var out []Warning
	for i := range r.Files {
		out = append(out, r.Files[i].Warnings...)
	}
	return out
}
