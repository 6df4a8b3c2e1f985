package java

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/sharon/internal/lang"
	"github.com/jward/sharon/internal/syntax"
)

// Parse parses Java source text and builds its syntax model. Node kinds the
// model does not cover become UnknownDecl or UnknownStmt values so that the
// Visitor can report them.
func Parse(ctx context.Context, src []byte) (*File, error) {
	tree, err := lang.Parse(ctx, lang.Java, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	if err := syntax.Check(tree.RootNode()); err != nil {
		return nil, err
	}
	b := &builder{src: src}
	return b.file(tree.RootNode()), nil
}

type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	return syntax.Collapse(syntax.Text(n, b.src))
}

func (b *builder) file(root *sitter.Node) *File {
	f := &File{}
	doc := ""
	for _, c := range syntax.Named(root) {
		switch c.Type() {
		case "package_declaration":
			f.Package = b.text(syntax.First(c, "scoped_identifier", "identifier"))
		case "import_declaration":
			f.Imports = append(f.Imports, Import{
				Name:     b.text(syntax.First(c, "scoped_identifier", "identifier")),
				Static:   syntax.Has(c, "static"),
				Wildcard: syntax.Has(c, "asterisk"),
			})
		case "module_declaration":
		case "line_comment", "block_comment", "comment":
			doc = syntax.Doc(doc, syntax.Text(c, b.src))
			continue
		default:
			f.Types = append(f.Types, b.decl(c, doc))
		}
		doc = ""
	}
	return f
}

// members converts a declaration body, attaching each comment to the
// declaration that follows it.
func (b *builder) members(body *sitter.Node) []Decl {
	var out []Decl
	doc := ""
	for _, c := range syntax.Named(body) {
		if syntax.IsComment(c) {
			doc = syntax.Doc(doc, syntax.Text(c, b.src))
			continue
		}
		out = append(out, b.decl(c, doc))
		doc = ""
	}
	return out
}

func (b *builder) decl(n *sitter.Node, doc string) Decl {
	switch n.Type() {
	case "class_declaration":
		return b.class(n, doc, false)
	case "interface_declaration":
		return b.class(n, doc, true)
	case "record_declaration":
		return b.record(n, doc)
	case "enum_declaration":
		return b.enum(n, doc)
	case "annotation_type_declaration":
		return b.annotation(n, doc)
	case "field_declaration", "constant_declaration":
		return b.field(n, doc)
	case "method_declaration":
		return b.method(n, doc, MethodNormal)
	case "constructor_declaration", "compact_constructor_declaration":
		return b.method(n, doc, MethodConstructor)
	case "static_initializer", "block":
		return b.initializer(n, doc)
	}
	return &UnknownDecl{Node: Node{Line: syntax.Line(n)}, Kind: n.Type()}
}

func (b *builder) name(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if id := n.ChildByFieldName("name"); id != nil {
		return b.text(id)
	}
	return b.text(syntax.First(n, "identifier"))
}

func (b *builder) modifiers(n *sitter.Node) []string {
	var out []string
	for _, m := range syntax.Children(syntax.First(n, "modifiers")) {
		switch m.Type() {
		case "annotation", "marker_annotation", "line_comment", "block_comment", "comment":
			continue
		}
		out = append(out, b.text(m))
	}
	return out
}

func (b *builder) typeParams(n *sitter.Node) []string {
	var out []string
	for _, tp := range syntax.All(syntax.First(n, "type_parameters"), "type_parameter") {
		out = append(out, b.text(syntax.First(tp, "type_identifier", "identifier")))
	}
	return out
}

// typeNames lists the simple names of the types in an extends or implements
// clause.
func (b *builder) typeNames(clause *sitter.Node) []string {
	if clause == nil {
		return nil
	}
	if list := syntax.First(clause, "type_list"); list != nil {
		clause = list
	}
	var out []string
	for _, t := range syntax.Named(clause) {
		if syntax.IsComment(t) {
			continue
		}
		out = append(out, simpleName(b.text(t)))
	}
	return out
}

// simpleName drops type arguments and any qualifier from a type.
func simpleName(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}

func (b *builder) body(n *sitter.Node, types ...string) *sitter.Node {
	if body := n.ChildByFieldName("body"); body != nil {
		return body
	}
	return syntax.First(n, types...)
}

func (b *builder) class(n *sitter.Node, doc string, iface bool) *Class {
	c := &Class{
		Node:       Node{Line: syntax.Line(n)},
		Doc:        doc,
		Interface:  iface,
		Modifiers:  b.modifiers(n),
		Name:       b.name(n),
		TypeParams: b.typeParams(n),
		Implements: b.typeNames(syntax.First(n, "super_interfaces")),
		Members:    b.members(b.body(n, "class_body", "interface_body")),
	}
	if iface {
		c.Extends = b.typeNames(syntax.First(n, "extends_interfaces"))
	} else {
		c.Extends = b.typeNames(syntax.First(n, "superclass"))
	}
	return c
}

func (b *builder) record(n *sitter.Node, doc string) *Record {
	_, components := b.params(syntax.First(n, "formal_parameters"))
	return &Record{
		Node:       Node{Line: syntax.Line(n)},
		Doc:        doc,
		Modifiers:  b.modifiers(n),
		Name:       b.name(n),
		TypeParams: b.typeParams(n),
		Components: components,
		Implements: b.typeNames(syntax.First(n, "super_interfaces")),
		Members:    b.members(b.body(n, "class_body")),
	}
}

func (b *builder) enum(n *sitter.Node, doc string) *Enum {
	e := &Enum{
		Node:       Node{Line: syntax.Line(n)},
		Doc:        doc,
		Modifiers:  b.modifiers(n),
		Name:       b.name(n),
		Implements: b.typeNames(syntax.First(n, "super_interfaces")),
	}
	pending := ""
	for _, c := range syntax.Named(b.body(n, "enum_body")) {
		switch {
		case syntax.IsComment(c):
			pending = syntax.Text(c, b.src)
			continue
		case c.Type() == "enum_constant":
			e.Entries = append(e.Entries, b.enumEntry(c, pending))
		case c.Type() == "enum_body_declarations":
			e.Members = append(e.Members, b.members(c)...)
		default:
			e.Members = append(e.Members, b.decl(c, pending))
		}
		pending = ""
	}
	return e
}

func (b *builder) enumEntry(n *sitter.Node, doc string) EnumEntry {
	entry := EnumEntry{Node: Node{Line: syntax.Line(n)}, Doc: doc, Name: b.name(n)}
	for _, a := range syntax.Named(syntax.First(n, "argument_list")) {
		if syntax.IsComment(a) {
			continue
		}
		entry.Args = append(entry.Args, b.arg(a))
	}
	return entry
}

func (b *builder) arg(n *sitter.Node) Arg {
	raw := syntax.Text(n, b.src)
	switch n.Type() {
	case "null_literal":
		return Arg{Kind: ArgNull}
	case "true", "false":
		return Arg{Kind: ArgBoolean, Value: raw}
	case "character_literal":
		return Arg{Kind: ArgChar, Value: strings.TrimSuffix(strings.TrimPrefix(raw, "'"), "'")}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		if strings.HasSuffix(raw, "l") || strings.HasSuffix(raw, "L") {
			return Arg{Kind: ArgLong, Value: raw}
		}
		return Arg{Kind: ArgInteger, Value: raw}
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return Arg{Kind: ArgDouble, Value: raw}
	case "string_literal":
		if strings.HasPrefix(raw, `"""`) {
			return Arg{Kind: ArgTextBlock, Value: strings.TrimSuffix(strings.TrimPrefix(raw, `"""`), `"""`)}
		}
		return Arg{Kind: ArgString, Value: strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)}
	}
	return Arg{Kind: ArgComposite}
}

func (b *builder) annotation(n *sitter.Node, doc string) *Annotation {
	a := &Annotation{
		Node:      Node{Line: syntax.Line(n)},
		Doc:       doc,
		Modifiers: b.modifiers(n),
		Name:      b.name(n),
	}
	pending := ""
	for _, c := range syntax.Named(b.body(n, "annotation_type_body")) {
		switch {
		case syntax.IsComment(c):
			pending = syntax.Text(c, b.src)
			continue
		case c.Type() == "annotation_type_element_declaration":
			a.Elements = append(a.Elements, b.annotationElement(c, pending))
		default:
			a.Members = append(a.Members, b.decl(c, pending))
		}
		pending = ""
	}
	return a
}

func (b *builder) annotationElement(n *sitter.Node, doc string) AnnotationElement {
	el := AnnotationElement{
		Node:      Node{Line: syntax.Line(n)},
		Doc:       doc,
		Modifiers: b.modifiers(n),
		Type:      b.text(n.ChildByFieldName("type")),
		Name:      b.name(n),
	}
	children := syntax.Children(n)
	for i, c := range children {
		if c.Type() == "default" && i+1 < len(children) {
			v := b.text(children[i+1])
			el.Default = &v
			break
		}
	}
	return el
}

func (b *builder) field(n *sitter.Node, doc string) *Field {
	f := &Field{
		Node:      Node{Line: syntax.Line(n)},
		Doc:       doc,
		Modifiers: b.modifiers(n),
		Type:      b.text(n.ChildByFieldName("type")),
	}
	for _, d := range syntax.All(n, "variable_declarator") {
		v := Var{Name: b.name(d)}
		if val := d.ChildByFieldName("value"); val != nil {
			s := b.text(val)
			v.Value = &s
		}
		f.Vars = append(f.Vars, v)
	}
	return f
}

func (b *builder) method(n *sitter.Node, doc string, kind MethodKind) *Method {
	m := &Method{
		Node:       Node{Line: syntax.Line(n)},
		Kind:       kind,
		Doc:        doc,
		Modifiers:  b.modifiers(n),
		TypeParams: b.typeParams(n),
		Name:       b.name(n),
	}
	if kind == MethodNormal {
		if t := n.ChildByFieldName("type"); t != nil && t.Type() != "void_type" {
			m.Result = b.text(t)
		}
	}
	m.Receiver, m.Params = b.params(syntax.First(n, "formal_parameters"))
	for _, t := range syntax.Named(syntax.First(n, "throws")) {
		if !syntax.IsComment(t) {
			m.Throws = append(m.Throws, b.text(t))
		}
	}
	body := b.body(n, "block", "constructor_body")
	if body != nil && body.Type() != ";" {
		m.Body = b.block(body)
	}
	m.Definition = b.definition(n, body)
	return m
}

// definition renders a declaration header: its modifier keywords followed by
// the source text between the modifiers and the body.
func (b *builder) definition(n, body *sitter.Node) string {
	start := n.StartByte()
	if mods := syntax.First(n, "modifiers"); mods != nil {
		start = mods.EndByte()
	}
	end := n.EndByte()
	if body != nil {
		end = body.StartByte()
	}
	header := strings.TrimSpace(strings.TrimSuffix(syntax.Span(b.src, start, end), ";"))
	if mods := strings.Join(b.modifiers(n), " "); mods != "" {
		return mods + " " + header
	}
	return header
}

func (b *builder) initializer(n *sitter.Node, doc string) *Method {
	m := &Method{
		Node: Node{Line: syntax.Line(n)},
		Kind: MethodInitializer,
		Doc:  doc,
	}
	body := n
	if n.Type() == "static_initializer" {
		m.Modifiers = []string{"static"}
		body = syntax.First(n, "block")
	}
	m.Body = b.block(body)
	return m
}

// params converts formal parameters. The receiver parameter, when present,
// is returned separately.
func (b *builder) params(n *sitter.Node) (*Param, []Param) {
	var receiver *Param
	var out []Param
	for _, p := range syntax.Named(n) {
		switch p.Type() {
		case "formal_parameter":
			out = append(out, Param{
				Modifiers: b.modifiers(p),
				Type:      b.text(p.ChildByFieldName("type")),
				Name:      b.name(p),
			})
		case "spread_parameter":
			param := Param{Modifiers: b.modifiers(p)}
			for _, c := range syntax.Named(p) {
				switch c.Type() {
				case "modifiers":
				case "variable_declarator":
					param.Name = b.name(c)
				default:
					if param.Type == "" {
						param.Type = b.text(c) + "..."
					}
				}
			}
			out = append(out, param)
		case "receiver_parameter":
			r := Param{Name: "this"}
			for _, c := range syntax.Named(p) {
				if c.Type() != "annotation" && c.Type() != "marker_annotation" && c.Type() != "identifier" {
					r.Type = b.text(c)
					break
				}
			}
			receiver = &r
		}
	}
	return receiver, out
}
