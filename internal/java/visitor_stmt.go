package java

import (
	"fmt"
	"sort"

	"github.com/jward/sharon/internal/emit"
)

// sortByPos returns the statements in source order. Statements without a
// known position keep their relative order after all positioned ones.
func sortByPos(list []Stmt) []Stmt {
	out := make([]Stmt, 0, len(list))
	for _, s := range list {
		if s != nil {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos() < out[j].Pos() })
	return out
}

func (v *Visitor) stmts(list []Stmt) error {
	for _, s := range sortByPos(list) {
		if err := v.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// code writes body inside a "code" element.
func (v *Visitor) code(body Stmt) error {
	v.w.StartElement("code")
	err := v.stmt(body)
	v.w.EndElement()
	return err
}

func (v *Visitor) stmt(s Stmt) error {
	switch s := s.(type) {
	case nil:
		return nil
	case *Block:
		if s == nil {
			return nil
		}
		return v.stmts(s.Stmts)
	case *If:
		return v.ifStmt(s)
	case *Switch:
		return v.switchStmt(s)
	case *For:
		v.w.StartElement("loop")
		v.w.Attr("type", "for")
		for _, init := range s.Init {
			v.w.EmptyElement("initializer")
			v.w.Attr("expr", init)
		}
		if s.Cond != "" {
			v.w.EmptyElement("compare")
			v.w.Attr("expr", s.Cond)
		}
		for _, u := range s.Update {
			v.w.EmptyElement("update")
			v.w.Attr("expr", u)
		}
		return v.loopBody(s.Body)
	case *ForEach:
		v.w.StartElement("loop")
		v.w.Attr("type", "for-each")
		v.w.EmptyElement("iterator")
		v.w.Attr("expression", s.Iterable)
		v.w.EmptyElement("variable")
		v.w.Attr("expression", s.Variable)
		return v.loopBody(s.Body)
	case *While:
		v.loopHead("while", s.Cond)
		return v.loopBody(s.Body)
	case *Do:
		v.loopHead("do", s.Cond)
		return v.loopBody(s.Body)
	case *Break:
		v.jump("break", "label", s.Label)
	case *Continue:
		v.jump("continue", "label", s.Label)
	case *Return:
		v.jump("return", "expr", s.Expr)
	case *Throw:
		v.jump("throw", "expr", s.Expr)
	case *Try:
		return v.try(s)
	case *Synchronized:
		return v.stmt(s.Body)
	case *Labeled:
		return v.stmt(s.Body)
	case *LocalDecl:
		return v.decl(s.Decl)
	case *Comment:
		emit.Comment(v.w, s.Text)
	case *Opaque:
	case *UnknownStmt:
		return unsupported(s.Kind, s.Pos())
	default:
		return unsupported(fmt.Sprintf("%T", s), 0)
	}
	return nil
}

func (v *Visitor) loopHead(kind, cond string) {
	v.w.StartElement("loop")
	v.w.Attr("type", kind)
	v.w.EmptyElement("condition")
	v.w.Attr("expr", cond)
}

// loopBody writes the body of the loop element opened by the caller and
// closes it.
func (v *Visitor) loopBody(body Stmt) error {
	err := v.code(body)
	v.w.EndElement()
	return err
}

func (v *Visitor) jump(element, attr, value string) {
	v.w.EmptyElement(element)
	if value != "" {
		v.w.Attr(attr, value)
	}
}

// ifStmt writes an if chain as one "condition" element with a "case" per
// arm. Else-if arms become sibling cases; a final else is a case without
// an "expr".
func (v *Visitor) ifStmt(s *If) error {
	v.w.StartElement("condition")
	v.w.Attr("type", "if")
	defer v.w.EndElement()

	var next Stmt = s
	for next != nil {
		arm, ok := next.(*If)
		if !ok {
			v.w.StartElement("case")
			err := v.code(next)
			v.w.EndElement()
			return err
		}
		v.w.StartElement("case")
		v.expr(arm.Cond)
		err := v.code(arm.Then)
		v.w.EndElement()
		if err != nil {
			return err
		}
		next = arm.Else
	}
	return nil
}

func (v *Visitor) expr(text string) {
	v.w.StartElement("expr")
	v.w.Text(text)
	v.w.EndElement()
}

// fallsThrough reports whether a switch group has no statements of its own,
// comments aside.
func fallsThrough(g SwitchGroup) bool {
	for _, s := range g.Body {
		if _, ok := s.(*Comment); !ok {
			return false
		}
	}
	return true
}

// switchStmt writes a switch as a "condition" element. Consecutive groups
// that fall through share one "case" holding all their labels; the case is
// closed by the first group that has statements, or by the end of the
// switch.
func (v *Visitor) switchStmt(s *Switch) error {
	v.w.StartElement("condition")
	v.w.Attr("type", "switch")
	v.w.Attr("selector", s.Selector)
	defer v.w.EndElement()

	open := false
	for _, g := range s.Groups {
		if !open {
			v.w.StartElement("case")
			open = true
		}
		for _, label := range g.Labels {
			v.expr(label)
		}
		if fallsThrough(g) {
			if err := v.stmts(g.Body); err != nil {
				return err
			}
			continue
		}
		v.w.StartElement("code")
		err := v.stmts(g.Body)
		v.w.EndElement()
		v.w.EndElement()
		open = false
		if err != nil {
			return err
		}
	}
	if open {
		v.w.EndElement()
	}
	return nil
}

func (v *Visitor) try(t *Try) error {
	v.w.StartElement("try")
	defer v.w.EndElement()

	for _, r := range t.Resources {
		v.w.EmptyElement("resource")
		v.w.Attr("expr", r)
	}
	if err := v.code(t.Body); err != nil {
		return err
	}
	for _, c := range t.Catches {
		v.w.StartElement("catch")
		v.w.Attr("type", c.Type)
		v.w.Attr("name", c.Name)
		err := v.code(c.Body)
		v.w.EndElement()
		if err != nil {
			return err
		}
	}
	if t.Finally != nil {
		v.w.StartElement("finally")
		err := v.code(t.Finally)
		v.w.EndElement()
		if err != nil {
			return err
		}
	}
	return nil
}
