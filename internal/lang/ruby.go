package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/phobologic/specgap/internal/syntax"
)

func init() {
	Languages["ruby"] = &Language{
		Name:       "ruby",
		Extensions: []string{".rb"},
		lang:       ruby.GetLanguage(),
		Lower:      rubyLower,
	}
}

func rubyLower(root *sitter.Node, source []byte) *syntax.Node {
	return &syntax.Node{
		Kind:     syntax.Sequence,
		Line:     1,
		Children: rubyStatements(root, source),
	}
}

// rubyStatements lowers the named children of a container node, skipping the
// given header nodes (class name, superclass, singleton target). A
// body_statement wrapper is flattened so old and new grammar shapes agree.
func rubyStatements(node *sitter.Node, source []byte, skip ...*sitter.Node) []*syntax.Node {
	var stmts []*syntax.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || isSkipped(child, skip) {
			continue
		}
		switch child.Type() {
		case "comment":
			continue
		case "body_statement":
			stmts = append(stmts, rubyStatements(child, source)...)
		default:
			stmts = append(stmts, rubyNode(child, source))
		}
	}
	return stmts
}

func isSkipped(node *sitter.Node, skip []*sitter.Node) bool {
	for _, s := range skip {
		if sameNode(node, s) {
			return true
		}
	}
	return false
}

func rubyNode(node *sitter.Node, source []byte) *syntax.Node {
	switch node.Type() {
	case "class":
		name := node.ChildByFieldName("name")
		super := node.ChildByFieldName("superclass")
		return rubyScope(syntax.ClassDef, node, name, source, name, super)

	case "module":
		name := node.ChildByFieldName("name")
		return rubyScope(syntax.ModuleDef, node, name, source, name)

	case "singleton_class":
		// class << self
		value := node.ChildByFieldName("value")
		return rubyScope(syntax.SingletonClassBlock, node, nil, source, value)

	case "method":
		return &syntax.Node{Kind: syntax.MethodDef, Name: rubyFieldText(node, "name", source), Line: line(node)}

	case "singleton_method":
		// def self.foo
		return &syntax.Node{Kind: syntax.SingletonMethodDef, Name: rubyFieldText(node, "name", source), Line: line(node)}

	case "identifier":
		// A bare word in statement position, such as `private`.
		return &syntax.Node{Kind: syntax.Call, Name: NodeText(node, source), Line: line(node)}

	case "call":
		return rubyCall(node, source)

	case "begin":
		return &syntax.Node{Kind: syntax.Sequence, Line: line(node), Children: rubyStatements(node, source)}
	}
	return &syntax.Node{Kind: syntax.Other, Line: line(node)}
}

func rubyScope(kind syntax.Kind, node, name *sitter.Node, source []byte, header ...*sitter.Node) *syntax.Node {
	n := &syntax.Node{
		Kind:     kind,
		Line:     line(node),
		Children: syntax.Wrap(rubyStatements(node, source, header...)),
	}
	if name != nil {
		n.Name = NodeText(name, source)
	}
	return n
}

// rubyCall lowers a method call. Only literal symbol arguments are kept as
// syntax.Symbol; everything else is lowered as a regular node.
func rubyCall(node *sitter.Node, source []byte) *syntax.Node {
	n := &syntax.Node{
		Kind:     syntax.Call,
		Name:     rubyFieldText(node, "method", source),
		Line:     line(node),
		Receiver: node.ChildByFieldName("receiver") != nil,
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return n
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg == nil || arg.Type() == "comment" {
			continue
		}
		if arg.Type() == "simple_symbol" {
			n.Children = append(n.Children, &syntax.Node{
				Kind: syntax.Symbol,
				Name: strings.TrimPrefix(NodeText(arg, source), ":"),
				Line: line(arg),
			})
			continue
		}
		n.Children = append(n.Children, rubyNode(arg, source))
	}
	return n
}

func rubyFieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return NodeText(child, source)
}
