// Package kotlin converts Kotlin source files into the normalized XML
// document, using the same element vocabulary as the Java dialect.
package kotlin

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jward/sharon/internal/emit"
	"github.com/jward/sharon/internal/javadoc"
	"github.com/jward/sharon/internal/scope"
	"github.com/jward/sharon/internal/xmlout"
)

// UnsupportedNodeError reports a syntax node kind with no emission rule.
type UnsupportedNodeError struct {
	Kind string
	Line int
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("kotlin: no emission rule for %s node at line %d", e.Kind, e.Line)
}

func unsupported(kind string, pos int) error {
	if pos == math.MaxInt {
		pos = 0
	}
	return &UnsupportedNodeError{Kind: kind, Line: pos}
}

// Visitor writes the document of one file. A Visitor owns its scope stack
// and must not be shared between files.
type Visitor struct {
	w         *xmlout.Writer
	scope     scope.Stack
	onPackage func(string) error
}

// VisitorOption configures a Visitor.
type VisitorOption func(*Visitor)

// OnPackage registers a callback invoked with the package name as soon as
// the package header is reached.
func OnPackage(fn func(pkg string) error) VisitorOption {
	return func(v *Visitor) { v.onPackage = fn }
}

// NewVisitor returns a Visitor writing to w.
func NewVisitor(w *xmlout.Writer, opts ...VisitorOption) *Visitor {
	v := &Visitor{w: w}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VisitFile writes the "file" element of f.
func (v *Visitor) VisitFile(f *File, srcPath string) error {
	v.w.StartElement("file")
	v.w.Attr("language", "kotlin")
	v.w.Attr("src", srcPath)

	if f.Package != "" {
		if v.onPackage != nil {
			if err := v.onPackage(f.Package); err != nil {
				return fmt.Errorf("record package %s: %w", f.Package, err)
			}
		}
		v.scope.Push(f.Package)
		defer v.scope.Pop()
		v.w.EmptyElement("package")
		v.w.Attr("package", f.Package)
	}

	for _, imp := range f.Imports {
		name := imp.Name
		if imp.Wildcard {
			name += ".*"
		}
		v.w.EmptyElement("import")
		v.w.Attr("package", name)
		if imp.Alias != "" {
			v.w.Attr("alias", imp.Alias)
		}
	}

	if err := v.decls(f.Decls); err != nil {
		return err
	}
	v.w.EndElement()
	return v.w.Err()
}

func (v *Visitor) decls(ds []Decl) error {
	for _, d := range ds {
		if err := v.decl(d); err != nil {
			return err
		}
	}
	return nil
}

func (v *Visitor) decl(d Decl) error {
	switch d := d.(type) {
	case *Class:
		return v.class(d)
	case *Function:
		return v.function(d)
	case *Property:
		v.property(d)
		return nil
	case *UnknownDecl:
		return unsupported(d.Kind, d.Pos())
	}
	return unsupported(fmt.Sprintf("%T", d), 0)
}

func (v *Visitor) class(c *Class) error {
	element := "class"
	if c.Kind == KindEnum {
		element = "enum"
	}
	v.w.StartElement(element)
	if c.Kind != KindEnum {
		v.w.Attr("type", c.Kind.String())
	}
	v.w.Attr("modifier", emit.Modifiers(c.Modifiers))
	v.w.Attr("name", c.Name)
	v.w.Attr("fullname", v.scope.Qualify(c.Name))
	v.scope.Push(c.Name)
	defer func() {
		v.scope.Pop()
		v.w.EndElement()
	}()

	for _, n := range c.Extends {
		v.w.EmptyElement("extends")
		v.w.Attr("name", n)
	}
	for _, n := range c.Implements {
		v.w.EmptyElement("implements")
		v.w.Attr("name", n)
	}

	if c.Kind == KindEnum {
		doc := javadoc.NewEnumDoc()
		emit.Fold(c.Doc, doc)
		emit.EnumDoc(v.w, doc)
		for _, e := range c.Entries {
			v.enumEntry(e)
		}
	} else {
		doc := javadoc.NewClassDoc(c.TypeParams...)
		emit.Fold(c.Doc, doc)
		emit.ClassDoc(v.w, doc)
	}

	switch {
	case c.Ctor != nil:
		if err := v.primaryConstructor(c.Ctor, c.Inits, c.Doc); err != nil {
			return err
		}
	default:
		for _, init := range c.Inits {
			v.w.StartElement("method")
			v.w.Attr("type", "initializer")
			v.w.Attr("modifier", "")
			emit.MethodDoc(v.w, javadoc.NewMethodDoc())
			err := v.code(init)
			v.w.EndElement()
			if err != nil {
				return err
			}
		}
	}
	return v.decls(c.Members)
}

func (v *Visitor) enumEntry(e EnumEntry) {
	doc := javadoc.NewMemberDoc()
	emit.Fold(e.Doc, doc)

	v.w.StartElement("entry")
	v.w.Attr("name", e.Name)
	emit.MemberDoc(v.w, doc)
	for _, a := range e.Args {
		v.w.StartElement("argument")
		v.w.Attr("type", a.Kind)
		if a.Kind != "null" && a.Kind != "composite" {
			v.w.Text(a.Value)
		}
		v.w.EndElement()
	}
	v.w.EndElement()
}

// primaryConstructor writes the primary constructor as a constructor
// method whose code is the concatenation of the class's init blocks. Its
// parameters are described by the @param and @property tags of the class
// documentation.
func (v *Visitor) primaryConstructor(ctor *Constructor, inits []*Block, classDoc string) error {
	doc := javadoc.NewConstructorDoc()
	for _, p := range ctor.Params {
		doc.DeclareParam(emit.Modifiers(p.Modifiers), p.Type, p.Name)
	}
	if strings.HasPrefix(classDoc, "/**") {
		for _, tag := range javadoc.Tags(classDoc) {
			if tag.Name != "param" && tag.Name != "property" {
				continue
			}
			fields := strings.Fields(tag.Value)
			if len(fields) == 0 {
				continue
			}
			if p, ok := doc.Params.Get(fields[0]); ok {
				p.Description = strings.TrimSpace(strings.TrimPrefix(tag.Value, fields[0]))
			}
		}
	}

	v.w.StartElement("method")
	v.w.Attr("type", "constructor")
	v.w.Attr("modifier", emit.Modifiers(ctor.Modifiers))
	defer v.w.EndElement()

	if ctor.Definition != "" {
		v.w.StartElement("definition")
		v.w.Text(ctor.Definition)
		v.w.EndElement()
	}
	emit.MethodDoc(v.w, doc)

	var stmts []Stmt
	for _, init := range inits {
		if init != nil {
			stmts = append(stmts, init.Stmts...)
		}
	}
	v.w.StartElement("code")
	err := v.stmts(stmts)
	v.w.EndElement()
	return err
}

func (v *Visitor) function(fn *Function) error {
	ctor := fn.Kind == FunctionConstructor
	doc := javadoc.NewMethodDoc()
	if ctor {
		doc = javadoc.NewConstructorDoc()
	}
	for _, tp := range fn.TypeParams {
		doc.DeclareTypeParam(tp)
	}
	if fn.Receiver != "" {
		doc.DeclareParam("", fn.Receiver, "this")
	}
	for _, p := range fn.Params {
		doc.DeclareParam(emit.Modifiers(p.Modifiers), p.Type, p.Name)
	}
	if !ctor && fn.Result != "" && fn.Result != "Unit" {
		doc.DeclareReturn(fn.Result)
	}
	emit.Fold(fn.Doc, doc)

	v.w.StartElement("method")
	if ctor {
		v.w.Attr("type", "constructor")
	} else {
		v.w.Attr("type", "normal")
	}
	v.w.Attr("modifier", emit.Modifiers(fn.Modifiers))
	if fn.Name != "" {
		v.w.Attr("name", fn.Name)
		v.w.Attr("fullname", v.scope.Qualify(fn.Name))
	}
	defer v.w.EndElement()

	if def := strings.TrimSpace(fn.Definition); def != "" {
		v.w.StartElement("definition")
		v.w.Text(def)
		v.w.EndElement()
	}
	emit.MethodDoc(v.w, doc)
	if fn.Body != nil {
		return v.code(fn.Body)
	}
	return nil
}

func (v *Visitor) property(p *Property) {
	doc := javadoc.NewMemberDoc()
	emit.Fold(p.Doc, doc)

	v.w.StartElement("field")
	v.w.Attr("modifier", emit.Modifiers(p.Modifiers))
	v.w.Attr("type", p.Type)
	v.w.Attr("name", p.Name)
	v.w.OptAttr("value", p.Value)
	emit.MemberDoc(v.w, doc)
	v.w.EndElement()
}

// sortByPos returns the statements in source order; statements without a
// known position keep their relative order at the end.
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
