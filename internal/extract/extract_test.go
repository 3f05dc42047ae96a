package extract

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/syntax"
)

var line atomic.Int64

func next() int {
	return int(line.Add(1))
}

func class(name string, body ...*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.ClassDef, Name: name, Line: next(), Children: syntax.Wrap(body)}
}

func module(name string, body ...*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.ModuleDef, Name: name, Line: next(), Children: syntax.Wrap(body)}
}

func sclass(body ...*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.SingletonClassBlock, Line: next(), Children: syntax.Wrap(body)}
}

func def(name string) *syntax.Node {
	return &syntax.Node{Kind: syntax.MethodDef, Name: name, Line: next()}
}

func defs(name string) *syntax.Node {
	return &syntax.Node{Kind: syntax.SingletonMethodDef, Name: name, Line: next()}
}

func call(name string, args ...*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.Call, Name: name, Line: next(), Children: args}
}

func sym(name string) *syntax.Node {
	return &syntax.Node{Kind: syntax.Symbol, Name: name}
}

func seq(stmts ...*syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.Sequence, Children: stmts}
}

func keys(t *testing.T, root *syntax.Node) []string {
	t.Helper()
	entries, err := Extract(root)
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}

func TestExtractSingleInstanceMethod(t *testing.T) {
	t.Parallel()

	entries, err := Extract(module("Foo", def("some_method")))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.True(t, e.Instance)
	assert.Equal(t, "Foo", e.Scope)
	assert.Equal(t, "some_method", e.Name)
	assert.Equal(t, "Foo#some_method", e.String())
	assert.Equal(t, "#some_method", e.Prefixed())
}

func TestExtractPrivateHidesFollowingDefs(t *testing.T) {
	t.Parallel()

	root := seq(
		call("require", &syntax.Node{Kind: syntax.Other}),
		class("Foo",
			def("pub"),
			call("private"),
			def("priv"),
		),
	)
	assert.Equal(t, []string{"Foo#pub"}, keys(t, root))
}

func TestExtractPrivateDoesNotLeakOutOfNestedScope(t *testing.T) {
	t.Parallel()

	root := module("Foo",
		class("Bar",
			call("private"),
			def("x"),
		),
		def("y"),
	)
	assert.Equal(t, []string{"Foo#y"}, keys(t, root))
}

func TestExtractPrivateDoesNotReachIntoNestedScope(t *testing.T) {
	t.Parallel()

	root := module("Foo",
		call("private"),
		class("Bar", def("x")),
		def("y"),
	)
	assert.Equal(t, []string{"Foo::Bar#x"}, keys(t, root))
}

func TestExtractNestedScopes(t *testing.T) {
	t.Parallel()

	root := module("Foo",
		class("Bar", def("conan")),
		def("some_method"),
	)
	assert.ElementsMatch(t, []string{"Foo::Bar#conan", "Foo#some_method"}, keys(t, root))
}

func TestExtractSiblingScopesDoNotShareNames(t *testing.T) {
	t.Parallel()

	root := module("A",
		class("B", def("b")),
		class("C", module("D", def("d"))),
	)
	assert.ElementsMatch(t, []string{"A::B#b", "A::C::D#d"}, keys(t, root))
}

func TestExtractSingletonBlock(t *testing.T) {
	t.Parallel()

	entries, err := Extract(class("Foo", sclass(def("create"))))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Foo.create", entries[0].String())
	assert.False(t, entries[0].Instance)
}

func TestExtractSingletonBlockHasOwnVisibility(t *testing.T) {
	t.Parallel()

	root := class("Buzz",
		call("private"),
		sclass(
			def("pub"),
			call("private"),
			def("priv"),
		),
		def("hidden"),
	)
	assert.Equal(t, []string{"Buzz.pub"}, keys(t, root))
}

func TestExtractSingletonBlockPrivateDoesNotLeak(t *testing.T) {
	t.Parallel()

	root := class("Foo",
		sclass(call("private"), def("secret")),
		def("visible"),
	)
	assert.Equal(t, []string{"Foo#visible"}, keys(t, root))
}

func TestExtractSingletonBlockIgnoresUnsupportedShapes(t *testing.T) {
	t.Parallel()

	root := class("Foo",
		sclass(
			defs("nope"),
			sclass(def("deeper")),
			def("ok"),
		),
	)
	assert.Equal(t, []string{"Foo.ok"}, keys(t, root))
}

func TestExtractSelfMethodIgnoresPrivate(t *testing.T) {
	t.Parallel()

	root := class("Fizz",
		call("private"),
		defs("noop"),
	)
	assert.Equal(t, []string{"Fizz.noop"}, keys(t, root))
}

func TestExtractPrivateClassMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root *syntax.Node
		want []string
	}{
		{
			"retracts prior self def",
			class("Fizz", defs("noop"), call("private_class_method", sym("noop"))),
			[]string{},
		},
		{
			"no prior definition",
			class("Fizz", call("private_class_method", sym("noop")), def("run")),
			[]string{"Fizz#run"},
		},
		{
			"before definition does not retract",
			class("Fizz", call("private_class_method", sym("noop")), defs("noop")),
			[]string{"Fizz.noop"},
		},
		{
			"runs after private",
			class("Fizz", defs("noop"), call("private"), call("private_class_method", sym("noop"))),
			[]string{},
		},
		{
			"retracts singleton block method",
			class("Fizz", sclass(def("make")), call("private_class_method", sym("make"))),
			[]string{},
		},
		{
			"leaves instance method alone",
			class("Fizz", def("noop"), call("private_class_method", sym("noop"))),
			[]string{"Fizz#noop"},
		},
		{
			"computed argument unsupported",
			class("Fizz", defs("noop"), call("private_class_method", &syntax.Node{Kind: syntax.Other, Name: "noop"})),
			[]string{"Fizz.noop"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, keys(t, tt.root))
		})
	}
}

func TestExtractPrivateShapes(t *testing.T) {
	t.Parallel()

	receiver := call("private")
	receiver.Receiver = true

	tests := []struct {
		name string
		stmt *syntax.Node
		want []string
	}{
		{"bare", call("private"), []string{}},
		{"with receiver", receiver, []string{"Foo#x"}},
		{"with argument", call("private", sym("x")), []string{"Foo#x"}},
		{"public is not a toggle", call("public"), []string{"Foo#x"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, keys(t, class("Foo", tt.stmt, def("x"))))
		})
	}
}

func TestExtractRedefinitionOverwrites(t *testing.T) {
	t.Parallel()

	first := def("run")
	second := def("run")
	entries, err := Extract(class("Foo", first, second))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.Line, entries[0].Line)
}

func TestExtractNoWrapper(t *testing.T) {
	t.Parallel()

	root := seq(
		call("register", def("i_m_a_method")),
		def("top_level"),
		defs("also_top_level"),
	)
	assert.Empty(t, keys(t, root))
}

func TestExtractEmptyBodies(t *testing.T) {
	t.Parallel()

	assert.Empty(t, keys(t, class("Foo")))
	assert.Empty(t, keys(t, seq()))
	assert.Empty(t, keys(t, class("Foo", sclass())))
}

func TestExtractTopLevelSequenceFlatMaps(t *testing.T) {
	t.Parallel()

	root := seq(
		class("A", def("a")),
		def("ignored"),
		module("B", defs("b")),
	)
	assert.Equal(t, []string{"A#a", "B.b"}, keys(t, root))
}

func TestExtractSourceLines(t *testing.T) {
	t.Parallel()

	d := def("run")
	s := defs("make")
	entries, err := Extract(class("Foo", d, s))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, d.Line, entries[0].Line)
	assert.Equal(t, s.Line, entries[1].Line)
}

func TestExtractInvalidRoot(t *testing.T) {
	t.Parallel()

	for _, root := range []*syntax.Node{nil, def("x"), call("private"), sclass(def("x")), {Kind: syntax.Other}} {
		entries, err := Extract(root)
		require.ErrorIs(t, err, ErrInvalidRootKind)
		assert.Nil(t, entries)
	}
}

func TestExtractIdempotent(t *testing.T) {
	t.Parallel()

	root := module("Foo",
		class("Bar", call("private"), def("x")),
		sclass(def("create")),
		defs("noop"),
		call("private_class_method", sym("noop")),
		def("y"),
	)
	first := keys(t, root)
	second := keys(t, root)
	assert.ElementsMatch(t, first, second)
	assert.ElementsMatch(t, []string{"Foo.create", "Foo#y"}, first)
}

func TestExtractSortable(t *testing.T) {
	t.Parallel()

	entries, err := Extract(seq(class("B", def("z"), def("a")), class("A", defs("m"), def("m"))))
	require.NoError(t, err)
	model.SortEntries(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.String()
	}
	assert.Equal(t, []string{"A#m", "A.m", "B#a", "B#z"}, got)
}
