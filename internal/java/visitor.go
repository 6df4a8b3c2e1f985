// Package java converts Java compilation units into the normalized XML
// document: declarations with their documentation, and the control-flow
// shape of constructor, method and initializer bodies.
package java

import (
	"fmt"
	"math"
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
	return fmt.Sprintf("java: no emission rule for %s node at line %d", e.Kind, e.Line)
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
// the package declaration is reached.
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

// VisitFile writes the "file" element of f. srcPath is recorded as the
// source path of the document.
func (v *Visitor) VisitFile(f *File, srcPath string) error {
	v.w.StartElement("file")
	v.w.Attr("language", "java")
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
		if imp.Static {
			v.w.Attr("static", "true")
		}
	}

	if err := v.decls(f.Types); err != nil {
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
	case *Record:
		return v.record(d)
	case *Enum:
		return v.enum(d)
	case *Annotation:
		return v.annotation(d)
	case *Field:
		v.field(d)
		return nil
	case *Method:
		return v.method(d)
	case *UnknownDecl:
		return unsupported(d.Kind, d.Pos())
	}
	return unsupported(fmt.Sprintf("%T", d), 0)
}

// open starts a named type declaration element and pushes its scope. The
// caller pops the scope when the members are written.
func (v *Visitor) open(element string, mods []string, name string) {
	v.w.StartElement(element)
	v.w.Attr("modifier", emit.Modifiers(mods))
	v.w.Attr("name", name)
	v.w.Attr("fullname", v.scope.Qualify(name))
	v.scope.Push(name)
}

func (v *Visitor) close() {
	v.scope.Pop()
	v.w.EndElement()
}

func (v *Visitor) supertypes(element string, names []string) {
	for _, n := range names {
		v.w.EmptyElement(element)
		v.w.Attr("name", n)
	}
}

func (v *Visitor) class(c *Class) error {
	doc := javadoc.NewClassDoc(c.TypeParams...)
	emit.Fold(c.Doc, doc)

	kind := "class"
	if c.Interface {
		kind = "interface"
	}
	v.w.StartElement("class")
	v.w.Attr("type", kind)
	v.w.Attr("modifier", emit.Modifiers(c.Modifiers))
	v.w.Attr("name", c.Name)
	v.w.Attr("fullname", v.scope.Qualify(c.Name))
	v.scope.Push(c.Name)
	defer v.close()

	v.supertypes("extends", c.Extends)
	v.supertypes("implements", c.Implements)
	emit.ClassDoc(v.w, doc)
	return v.decls(c.Members)
}

func (v *Visitor) record(r *Record) error {
	doc := javadoc.NewClassDoc(r.TypeParams...)
	emit.Fold(r.Doc, doc)

	v.open("record", r.Modifiers, r.Name)
	defer v.close()

	v.supertypes("implements", r.Implements)
	emit.ClassDoc(v.w, doc)
	for _, p := range r.Components {
		v.w.EmptyElement("component")
		v.w.Attr("modifier", emit.Modifiers(p.Modifiers))
		v.w.Attr("type", p.Type)
		v.w.Attr("name", p.Name)
	}
	return v.decls(r.Members)
}

func (v *Visitor) enum(e *Enum) error {
	doc := javadoc.NewEnumDoc()
	emit.Fold(e.Doc, doc)

	v.open("enum", e.Modifiers, e.Name)
	defer v.close()

	v.supertypes("implements", e.Implements)
	emit.EnumDoc(v.w, doc)
	for _, entry := range e.Entries {
		v.enumEntry(entry)
	}
	return v.decls(e.Members)
}

func (v *Visitor) enumEntry(entry EnumEntry) {
	doc := javadoc.NewMemberDoc()
	emit.Fold(entry.Doc, doc)

	v.w.StartElement("entry")
	v.w.Attr("name", entry.Name)
	emit.MemberDoc(v.w, doc)
	for _, a := range entry.Args {
		v.w.StartElement("argument")
		v.w.Attr("type", a.Kind.String())
		if a.Kind != ArgNull && a.Kind != ArgComposite {
			v.w.Text(a.Value)
		}
		v.w.EndElement()
	}
	v.w.EndElement()
}

func (v *Visitor) annotation(a *Annotation) error {
	doc := javadoc.NewClassDoc()
	emit.Fold(a.Doc, doc)

	v.open("annotation", a.Modifiers, a.Name)
	defer v.close()

	emit.ClassDoc(v.w, doc)
	for _, el := range a.Elements {
		elDoc := javadoc.NewMemberDoc()
		emit.Fold(el.Doc, elDoc)

		v.w.StartElement("element")
		v.w.Attr("modifier", emit.Modifiers(el.Modifiers))
		v.w.Attr("type", el.Type)
		v.w.Attr("name", el.Name)
		v.w.OptAttr("default", el.Default)
		emit.MemberDoc(v.w, elDoc)
		v.w.EndElement()
	}
	return v.decls(a.Members)
}

// field writes one "field" element per declarator, each carrying the
// declaration's documentation.
func (v *Visitor) field(f *Field) {
	mods := emit.Modifiers(f.Modifiers)
	for _, d := range f.Vars {
		doc := javadoc.NewMemberDoc()
		emit.Fold(f.Doc, doc)

		v.w.StartElement("field")
		v.w.Attr("modifier", mods)
		v.w.Attr("type", f.Type)
		v.w.Attr("name", d.Name)
		v.w.OptAttr("value", d.Value)
		emit.MemberDoc(v.w, doc)
		v.w.EndElement()
	}
}

func (v *Visitor) method(m *Method) error {
	doc := javadoc.NewMethodDoc()
	if m.Kind == MethodConstructor {
		doc = javadoc.NewConstructorDoc()
	}
	for _, tp := range m.TypeParams {
		doc.DeclareTypeParam(tp)
	}
	if r := m.Receiver; r != nil {
		doc.DeclareParam("", r.Type, r.Name)
	}
	for _, p := range m.Params {
		doc.DeclareParam(emit.Modifiers(p.Modifiers), p.Type, p.Name)
	}
	if m.Result != "" {
		doc.DeclareReturn(m.Result)
	}
	for _, t := range m.Throws {
		doc.DeclareThrows(t)
	}
	emit.Fold(m.Doc, doc)

	v.w.StartElement("method")
	v.w.Attr("type", m.Kind.String())
	v.w.Attr("modifier", emit.Modifiers(m.Modifiers))
	if m.Kind != MethodInitializer {
		v.w.Attr("name", m.Name)
		v.w.Attr("fullname", v.scope.Qualify(m.Name))
	}
	if def := strings.TrimSpace(m.Definition); def != "" {
		v.w.StartElement("definition")
		v.w.Text(def)
		v.w.EndElement()
	}
	emit.MethodDoc(v.w, doc)
	if m.Body != nil {
		if err := v.code(m.Body); err != nil {
			return err
		}
	}
	v.w.EndElement()
	return nil
}
