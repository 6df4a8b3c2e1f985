package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/sharon/internal/syntax"
)

func (b *builder) block(n *sitter.Node) *Block {
	if n == nil {
		return nil
	}
	blk := &Block{Node: Node{Line: syntax.Line(n)}}
	for _, c := range syntax.Named(n) {
		blk.Stmts = append(blk.Stmts, b.stmt(c))
	}
	return blk
}

// cond returns the text of a condition without its enclosing parentheses.
func (b *builder) cond(n *sitter.Node) string {
	if n != nil && n.Type() == "parenthesized_expression" {
		for _, c := range syntax.Named(n) {
			if !syntax.IsComment(c) {
				return b.text(c)
			}
		}
	}
	return b.text(n)
}

func (b *builder) label(n *sitter.Node) string {
	return b.text(syntax.First(n, "identifier"))
}

// operand returns the first non-comment named child, as in "return x;".
func (b *builder) operand(n *sitter.Node) string {
	for _, c := range syntax.Named(n) {
		if !syntax.IsComment(c) {
			return b.text(c)
		}
	}
	return ""
}

func (b *builder) stmt(n *sitter.Node) Stmt {
	if n == nil {
		return nil
	}
	at := Node{Line: syntax.Line(n)}
	if !n.IsNamed() {
		return &Opaque{Node: at, Kind: n.Type()}
	}
	switch n.Type() {
	case "block":
		return b.block(n)
	case "line_comment", "block_comment", "comment":
		return &Comment{Node: at, Text: syntax.Text(n, b.src)}
	case "if_statement":
		s := &If{
			Node: at,
			Cond: b.cond(n.ChildByFieldName("condition")),
			Then: b.stmt(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			s.Else = b.stmt(alt)
		}
		return s
	case "switch_expression", "switch_statement":
		return b.switchStmt(n)
	case "expression_statement":
		if sw := syntax.First(n, "switch_expression"); sw != nil {
			return b.switchStmt(sw)
		}
		return &Opaque{Node: at, Kind: n.Type()}
	case "for_statement":
		s := &For{Node: at, Body: b.stmt(n.ChildByFieldName("body"))}
		for _, c := range syntax.Field(n, "init") {
			s.Init = append(s.Init, strings.TrimSpace(strings.TrimSuffix(b.text(c), ";")))
		}
		s.Cond = b.text(n.ChildByFieldName("condition"))
		for _, c := range syntax.Field(n, "update") {
			s.Update = append(s.Update, b.text(c))
		}
		return s
	case "enhanced_for_statement":
		return b.forEach(n)
	case "while_statement":
		return &While{Node: at, Cond: b.cond(n.ChildByFieldName("condition")), Body: b.stmt(n.ChildByFieldName("body"))}
	case "do_statement":
		return &Do{Node: at, Cond: b.cond(n.ChildByFieldName("condition")), Body: b.stmt(n.ChildByFieldName("body"))}
	case "break_statement":
		return &Break{Node: at, Label: b.label(n)}
	case "continue_statement":
		return &Continue{Node: at, Label: b.label(n)}
	case "return_statement":
		return &Return{Node: at, Expr: b.operand(n)}
	case "throw_statement":
		return &Throw{Node: at, Expr: b.operand(n)}
	case "try_statement", "try_with_resources_statement":
		return b.try(n)
	case "synchronized_statement":
		return &Synchronized{
			Node: at,
			Lock: b.cond(syntax.First(n, "parenthesized_expression")),
			Body: b.block(b.body(n, "block")),
		}
	case "labeled_statement":
		s := &Labeled{Node: at, Label: b.label(n)}
		named := syntax.Named(n)
		if len(named) > 0 {
			if last := named[len(named)-1]; last.Type() != "identifier" {
				s.Body = b.stmt(last)
			}
		}
		return s
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		return &LocalDecl{Node: at, Decl: b.decl(n, "")}
	case "local_variable_declaration", "assert_statement", "yield_statement",
		"explicit_constructor_invocation", "empty_statement":
		return &Opaque{Node: at, Kind: n.Type()}
	}
	return &UnknownStmt{Node: at, Kind: n.Type()}
}

func (b *builder) forEach(n *sitter.Node) *ForEach {
	s := &ForEach{
		Node:     Node{Line: syntax.Line(n)},
		Iterable: b.text(n.ChildByFieldName("value")),
		Body:     b.stmt(n.ChildByFieldName("body")),
	}
	// The loop variable spans from the first token after "(" up to ":".
	children := syntax.Children(n)
	var start *sitter.Node
	for i, c := range children {
		if c.Type() == "(" && i+1 < len(children) {
			start = children[i+1]
		}
		if c.Type() == ":" && start != nil {
			s.Variable = syntax.Span(b.src, start.StartByte(), c.StartByte())
			break
		}
	}
	return s
}

func (b *builder) switchStmt(n *sitter.Node) *Switch {
	cond := n.ChildByFieldName("condition")
	if cond == nil {
		cond = syntax.First(n, "parenthesized_expression")
	}
	s := &Switch{Node: Node{Line: syntax.Line(n)}, Selector: b.cond(cond)}
	for _, c := range syntax.Named(b.body(n, "switch_block")) {
		switch c.Type() {
		case "switch_block_statement_group", "switch_rule":
			var g SwitchGroup
			for _, part := range syntax.Named(c) {
				if part.Type() == "switch_label" {
					b.switchLabel(&g, part)
					continue
				}
				g.Body = append(g.Body, b.stmt(part))
			}
			s.Groups = append(s.Groups, g)
		}
	}
	return s
}

func (b *builder) switchLabel(g *SwitchGroup, n *sitter.Node) {
	if syntax.Has(n, "default") {
		g.Default = true
	}
	for _, e := range syntax.Named(n) {
		if !syntax.IsComment(e) {
			g.Labels = append(g.Labels, b.text(e))
		}
	}
}

func (b *builder) try(n *sitter.Node) *Try {
	t := &Try{
		Node: Node{Line: syntax.Line(n)},
		Body: b.block(b.body(n, "block")),
	}
	for _, r := range syntax.Named(syntax.First(n, "resource_specification")) {
		if r.Type() == "resource" {
			t.Resources = append(t.Resources, b.text(r))
		}
	}
	for _, cc := range syntax.All(n, "catch_clause") {
		param := syntax.First(cc, "catch_formal_parameter")
		var types []string
		for _, ct := range syntax.Named(syntax.First(param, "catch_type")) {
			types = append(types, b.text(ct))
		}
		t.Catches = append(t.Catches, Catch{
			Type: strings.Join(types, "|"),
			Name: b.name(param),
			Body: b.block(b.body(cc, "block")),
		})
	}
	if fin := syntax.First(n, "finally_clause"); fin != nil {
		t.Finally = b.block(syntax.First(fin, "block"))
	}
	return t
}
