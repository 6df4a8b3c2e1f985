package kotlin

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/sharon/internal/syntax"
)

// block converts the statements held by n. Braces blocks are not nodes of
// their own, so n is the enclosing function body, init block, control
// structure body or try clause. When n holds a "{", only the children
// between it and the matching "}" are read.
func (b *builder) block(n *sitter.Node) *Block {
	if n == nil {
		return nil
	}
	blk := &Block{Node: Node{Line: syntax.Line(n)}}
	children := syntax.Children(n)
	for i, c := range children {
		if c.Type() == "{" {
			children = children[i+1:]
			break
		}
	}
	for _, c := range children {
		if c.Type() == "}" {
			break
		}
		if c.IsNamed() {
			b.appendStmts(blk, c)
		}
	}
	return blk
}

// appendStmts adds the statement n to blk, flattening statements lists
// and keeping the comments a simple statement ends with.
func (b *builder) appendStmts(blk *Block, n *sitter.Node) {
	if n.Type() == "statements" {
		for _, c := range syntax.Named(n) {
			b.appendStmts(blk, c)
		}
		return
	}
	s := b.stmt(n)
	blk.Stmts = append(blk.Stmts, s)
	switch s.(type) {
	case *Opaque, *Jump:
		for _, c := range syntax.TrailingComments(n) {
			blk.Stmts = append(blk.Stmts, b.stmt(c))
		}
	}
}

// body converts a control structure body: a braces block or a single
// statement.
func (b *builder) body(n *sitter.Node) Stmt {
	if n == nil {
		return nil
	}
	if n.Type() != "control_structure_body" {
		return b.stmt(n)
	}
	return b.block(n)
}

// parenthesized returns the first named child after "(".
func (b *builder) parenthesized(n *sitter.Node) string {
	return b.afterToken(n, "(")
}

func (b *builder) stmt(n *sitter.Node) Stmt {
	at := Node{Line: syntax.Line(n)}
	switch n.Type() {
	case "block":
		return b.block(n)
	case "comment", "line_comment", "multiline_comment", "block_comment":
		return &Comment{Node: at, Text: syntax.Text(n, b.src)}
	case "if_expression":
		return b.ifExpr(n)
	case "when_expression":
		return b.when(n)
	case "for_statement":
		s := &For{Node: at}
		if v := syntax.First(n, "variable_declaration", "multi_variable_declaration"); v != nil {
			s.Variable = b.text(v)
		}
		s.Iterable = b.afterToken(n, "in")
		s.Body = b.body(syntax.First(n, "control_structure_body"))
		return s
	case "while_statement":
		return &While{Node: at, Cond: b.parenthesized(n), Body: b.body(syntax.First(n, "control_structure_body"))}
	case "do_while_statement":
		return &DoWhile{Node: at, Cond: b.parenthesized(n), Body: b.body(syntax.First(n, "control_structure_body"))}
	case "jump_expression":
		return b.jump(n)
	case "try_expression":
		return b.try(n)
	case "class_declaration", "object_declaration":
		return &LocalDecl{Node: at, Decl: b.class(n, "")}
	}
	if isExpression(n.Type()) || !n.IsNamed() {
		return &Opaque{Node: at, Kind: n.Type()}
	}
	return &UnknownStmt{Node: at, Kind: n.Type()}
}

func (b *builder) ifExpr(n *sitter.Node) *If {
	s := &If{Node: Node{Line: syntax.Line(n)}, Cond: b.parenthesized(n)}
	afterElse := false
	for _, c := range syntax.Children(n) {
		switch {
		case c.Type() == "else":
			afterElse = true
		case c.Type() == "control_structure_body" && !afterElse:
			s.Then = b.body(c)
		case c.Type() == "control_structure_body":
			s.Else = b.elseBody(c)
		}
	}
	return s
}

// elseBody unwraps "else if" so that chains stay flat.
func (b *builder) elseBody(n *sitter.Node) Stmt {
	if !syntax.Has(n, "{") {
		named := syntax.Named(n)
		if len(named) == 1 && named[0].Type() == "if_expression" {
			return b.ifExpr(named[0])
		}
	}
	return b.body(n)
}

func (b *builder) when(n *sitter.Node) *When {
	s := &When{Node: Node{Line: syntax.Line(n)}}
	if subj := syntax.First(n, "when_subject"); subj != nil {
		s.Subject = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(b.text(subj), "("), ")"))
	}
	for _, e := range syntax.All(n, "when_entry") {
		entry := WhenEntry{Else: syntax.Has(e, "else")}
		for _, c := range syntax.All(e, "when_condition") {
			entry.Conds = append(entry.Conds, b.text(c))
		}
		entry.Body = b.body(syntax.First(e, "control_structure_body"))
		s.Entries = append(s.Entries, entry)
	}
	return s
}

func (b *builder) jump(n *sitter.Node) *Jump {
	j := &Jump{Node: Node{Line: syntax.Line(n)}}
	for _, c := range syntax.Children(n) {
		switch {
		case !c.IsNamed():
			if j.Keyword == "" {
				j.Keyword = strings.TrimSuffix(c.Type(), "@")
			}
		case c.Type() == "label":
			j.Label = strings.Trim(b.text(c), "@")
		case syntax.IsComment(c):
		case j.Expr == "":
			j.Expr = b.text(c)
		}
	}
	return j
}

func (b *builder) try(n *sitter.Node) *Try {
	t := &Try{
		Node: Node{Line: syntax.Line(n)},
		Body: b.block(n),
	}
	for _, cb := range syntax.All(n, "catch_block") {
		t.Catches = append(t.Catches, Catch{
			Name: b.text(syntax.First(cb, "simple_identifier")),
			Type: b.afterToken(cb, ":"),
			Body: b.block(cb),
		})
	}
	if fin := syntax.First(n, "finally_block"); fin != nil {
		t.Finally = b.block(fin)
	}
	return t
}
