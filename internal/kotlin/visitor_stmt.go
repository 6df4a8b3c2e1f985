package kotlin

import (
	"fmt"

	"github.com/jward/sharon/internal/emit"
)

func (v *Visitor) stmts(list []Stmt) error {
	for _, s := range sortByPos(list) {
		if err := v.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (v *Visitor) code(body Stmt) error {
	v.w.StartElement("code")
	err := v.stmt(body)
	v.w.EndElement()
	return err
}

func (v *Visitor) stmt(s Stmt) error {
	switch s := s.(type) {
	case nil:
	case *Block:
		if s != nil {
			return v.stmts(s.Stmts)
		}
	case *If:
		return v.ifStmt(s)
	case *When:
		return v.when(s)
	case *For:
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
	case *DoWhile:
		v.loopHead("do", s.Cond)
		return v.loopBody(s.Body)
	case *Jump:
		v.jump(s)
	case *Try:
		return v.try(s)
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

func (v *Visitor) loopBody(body Stmt) error {
	err := v.code(body)
	v.w.EndElement()
	return err
}

func (v *Visitor) jump(j *Jump) {
	switch j.Keyword {
	case "return", "throw":
		v.w.EmptyElement(j.Keyword)
		if j.Expr != "" {
			v.w.Attr("expr", j.Expr)
		}
		if j.Label != "" {
			v.w.Attr("label", j.Label)
		}
	case "break", "continue":
		v.w.EmptyElement(j.Keyword)
		if j.Label != "" {
			v.w.Attr("label", j.Label)
		}
	}
}

func (v *Visitor) expr(text string) {
	v.w.StartElement("expr")
	v.w.Text(text)
	v.w.EndElement()
}

// ifStmt writes an if chain as one "condition" element; else-if arms are
// sibling cases and a final else is a case without an "expr".
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

// when writes a when expression. Entries never fall through, so every entry
// is its own case carrying one "expr" per condition.
func (v *Visitor) when(s *When) error {
	v.w.StartElement("condition")
	v.w.Attr("type", "when")
	if s.Subject != "" {
		v.w.Attr("selector", s.Subject)
	}
	defer v.w.EndElement()

	for _, e := range s.Entries {
		v.w.StartElement("case")
		for _, c := range e.Conds {
			v.expr(c)
		}
		err := v.code(e.Body)
		v.w.EndElement()
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *Visitor) try(t *Try) error {
	v.w.StartElement("try")
	defer v.w.EndElement()

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
