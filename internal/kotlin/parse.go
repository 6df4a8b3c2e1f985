package kotlin

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/sharon/internal/lang"
	"github.com/jward/sharon/internal/syntax"
)

// Parse parses Kotlin source text and builds its syntax model.
func Parse(ctx context.Context, src []byte) (*File, error) {
	tree, err := lang.Parse(ctx, lang.Kotlin, src)
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

// isExpression reports whether a node kind is an expression or other
// statement-level construct that carries no structure of its own.
func isExpression(kind string) bool {
	if strings.HasSuffix(kind, "_expression") || strings.HasSuffix(kind, "_literal") {
		return true
	}
	switch kind {
	case "assignment", "simple_identifier", "property_declaration", "function_declaration",
		"type_alias", "label", "annotation", "file_annotation", "shebang_line",
		"string_literal", "null", "collection_literal", "callable_reference",
		"lambda_literal", "anonymous_function", "object_literal":
		return true
	}
	return false
}

func (b *builder) file(root *sitter.Node) *File {
	f := &File{}
	doc := ""
	for _, c := range syntax.Named(root) {
		switch {
		case syntax.IsComment(c):
			doc = syntax.Doc(doc, syntax.Text(c, b.src))
			continue
		case c.Type() == "package_header":
			f.Package = b.text(syntax.First(c, "identifier"))
		case c.Type() == "import_list":
			for _, h := range syntax.All(c, "import_header") {
				f.Imports = append(f.Imports, b.importHeader(h))
			}
		case c.Type() == "import_header":
			f.Imports = append(f.Imports, b.importHeader(c))
		default:
			if d := b.decl(c, doc); d != nil {
				f.Decls = append(f.Decls, d)
			}
		}
		doc = b.docAfter(c)
	}
	return f
}

// docAfter returns the comment left open at the end of n, which documents
// the declaration that follows n.
func (b *builder) docAfter(n *sitter.Node) string {
	doc := ""
	for _, c := range syntax.TrailingComments(n) {
		doc = syntax.Doc(doc, syntax.Text(c, b.src))
	}
	return doc
}

func (b *builder) importHeader(n *sitter.Node) Import {
	imp := Import{
		Name:     b.text(syntax.First(n, "identifier")),
		Wildcard: syntax.Has(n, "*") || syntax.Has(n, "wildcard_import"),
	}
	if alias := syntax.First(n, "import_alias"); alias != nil {
		imp.Alias = b.text(syntax.First(alias, "type_identifier", "simple_identifier"))
	}
	return imp
}

// decl converts a declaration. Statement-level expressions found among
// declarations (top-level script code) yield nil.
func (b *builder) decl(n *sitter.Node, doc string) Decl {
	switch n.Type() {
	case "class_declaration", "object_declaration", "companion_object":
		return b.class(n, doc)
	case "function_declaration":
		return b.function(n, doc, FunctionNormal)
	case "secondary_constructor":
		return b.function(n, doc, FunctionConstructor)
	case "property_declaration":
		return b.property(n, doc)
	case "type_alias", "getter", "setter":
		return nil
	}
	if isExpression(n.Type()) || n.Type() == "statements" {
		return nil
	}
	return &UnknownDecl{Node: Node{Line: syntax.Line(n)}, Kind: n.Type()}
}

func (b *builder) modifiers(n *sitter.Node) []string {
	var out []string
	for _, m := range syntax.Named(syntax.First(n, "modifiers")) {
		switch m.Type() {
		case "annotation", "multiline_comment", "comment", "line_comment":
			continue
		}
		out = append(out, b.text(m))
	}
	return out
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}

func (b *builder) typeParams(n *sitter.Node) []string {
	var out []string
	for _, tp := range syntax.All(syntax.First(n, "type_parameters"), "type_parameter") {
		out = append(out, b.text(syntax.First(tp, "type_identifier", "simple_identifier")))
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

// supertypes splits the delegation specifiers into the superclass, which
// is invoked with a constructor call, and the other supertypes.
func (b *builder) supertypes(n *sitter.Node) (extends, implements []string) {
	specs := syntax.All(n, "delegation_specifier")
	if list := syntax.First(n, "delegation_specifiers"); list != nil {
		specs = append(specs, syntax.All(list, "delegation_specifier")...)
	}
	for _, s := range specs {
		name := simpleName(b.text(s))
		if t := syntax.Find(s, "user_type"); t != nil {
			name = simpleName(b.text(t))
		}
		if syntax.Find(s, "constructor_invocation") != nil {
			extends = append(extends, name)
		} else {
			implements = append(implements, name)
		}
	}
	return extends, implements
}

func (b *builder) class(n *sitter.Node, doc string) *Class {
	c := &Class{
		Node:       Node{Line: syntax.Line(n)},
		Doc:        doc,
		Modifiers:  b.modifiers(n),
		Name:       b.text(syntax.First(n, "type_identifier", "simple_identifier")),
		TypeParams: b.typeParams(n),
	}
	if syntax.Has(n, "enum") && !hasModifier(c.Modifiers, "enum") {
		c.Modifiers = append(c.Modifiers, "enum")
	}
	c.Extends, c.Implements = b.supertypes(n)
	switch {
	case n.Type() == "companion_object":
		c.Kind = KindCompanion
		if c.Name == "" {
			c.Name = "Companion"
		}
	case n.Type() == "object_declaration":
		c.Kind = KindObject
	case syntax.Has(n, "interface"):
		c.Kind = KindInterface
		c.Extends = append(c.Extends, c.Implements...)
		c.Implements = nil
	case hasModifier(c.Modifiers, "enum") || syntax.Has(n, "enum_class_body"):
		c.Kind = KindEnum
	}
	if pc := syntax.First(n, "primary_constructor"); pc != nil {
		c.Ctor = b.primaryConstructor(pc)
	}

	body := syntax.First(n, "class_body", "enum_class_body")
	b.classBody(c, body, "")
	return c
}

// classBody adds the entries, init blocks and members of body to c,
// attaching each comment to the declaration that follows it. doc is the
// comment pending when body starts.
func (b *builder) classBody(c *Class, body *sitter.Node, doc string) {
	for _, m := range syntax.Named(body) {
		switch {
		case syntax.IsComment(m):
			doc = syntax.Doc(doc, syntax.Text(m, b.src))
			continue
		case m.Type() == "enum_entry":
			c.Entries = append(c.Entries, b.enumEntry(m, doc))
		case m.Type() == "anonymous_initializer":
			c.Inits = append(c.Inits, b.block(m))
		case m.Type() == "class_member_declarations":
			b.classBody(c, m, doc)
		default:
			if d := b.decl(m, doc); d != nil {
				c.Members = append(c.Members, d)
			}
		}
		doc = b.docAfter(m)
	}
}

func (b *builder) primaryConstructor(n *sitter.Node) *Constructor {
	ctor := &Constructor{
		Node:       Node{Line: syntax.Line(n)},
		Modifiers:  b.modifiers(n),
		Definition: b.text(n),
	}
	params := syntax.All(n, "class_parameter")
	if list := syntax.First(n, "class_parameters"); list != nil {
		params = append(params, syntax.All(list, "class_parameter")...)
	}
	for _, p := range params {
		param := Param{
			Modifiers: b.modifiers(p),
			Name:      b.text(syntax.First(p, "simple_identifier")),
			Type:      b.afterToken(p, ":"),
		}
		if kind := syntax.First(p, "binding_pattern_kind", "val", "var"); kind != nil {
			param.Modifiers = append(param.Modifiers, b.text(kind))
		}
		ctor.Params = append(ctor.Params, param)
	}
	return ctor
}

// afterToken returns the text of the first named child following the first
// anonymous token tok.
func (b *builder) afterToken(n *sitter.Node, tok string) string {
	if c := b.nodeAfter(n, tok); c != nil {
		return b.text(c)
	}
	return ""
}

func (b *builder) nodeAfter(n *sitter.Node, tok string) *sitter.Node {
	seen := false
	for _, c := range syntax.Children(n) {
		if !seen {
			seen = c.Type() == tok
			continue
		}
		if c.IsNamed() && !syntax.IsComment(c) {
			return c
		}
	}
	return nil
}

func (b *builder) enumEntry(n *sitter.Node, doc string) EnumEntry {
	e := EnumEntry{
		Node: Node{Line: syntax.Line(n)},
		Doc:  doc,
		Name: b.text(syntax.First(n, "simple_identifier")),
	}
	for _, va := range syntax.All(syntax.First(n, "value_arguments"), "value_argument") {
		named := syntax.Named(va)
		if len(named) == 0 {
			continue
		}
		e.Args = append(e.Args, b.arg(named[len(named)-1]))
	}
	return e
}

func (b *builder) arg(n *sitter.Node) Arg {
	raw := syntax.Text(n, b.src)
	switch n.Type() {
	case "null", "null_literal":
		return Arg{Kind: "null"}
	case "boolean_literal":
		return Arg{Kind: "boolean", Value: raw}
	case "character_literal":
		return Arg{Kind: "char", Value: strings.TrimSuffix(strings.TrimPrefix(raw, "'"), "'")}
	case "integer_literal", "hex_literal", "bin_literal", "unsigned_literal":
		return Arg{Kind: "integer", Value: raw}
	case "long_literal":
		return Arg{Kind: "long", Value: raw}
	case "real_literal":
		return Arg{Kind: "double", Value: raw}
	case "string_literal", "line_string_literal", "multi_line_string_literal":
		if strings.HasPrefix(raw, `"""`) {
			return Arg{Kind: "textblock", Value: strings.TrimSuffix(strings.TrimPrefix(raw, `"""`), `"""`)}
		}
		return Arg{Kind: "string", Value: strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)}
	}
	if raw == "null" {
		return Arg{Kind: "null"}
	}
	return Arg{Kind: "composite"}
}

func (b *builder) function(n *sitter.Node, doc string, kind FunctionKind) *Function {
	fn := &Function{
		Node:       Node{Line: syntax.Line(n)},
		Kind:       kind,
		Doc:        doc,
		Modifiers:  b.modifiers(n),
		TypeParams: b.typeParams(n),
		Name:       b.text(syntax.First(n, "simple_identifier")),
	}
	if kind == FunctionConstructor {
		fn.Name = ""
	}
	if r := syntax.First(n, "receiver_type"); r != nil {
		fn.Receiver = b.text(r)
	}

	params := syntax.First(n, "function_value_parameters")
	var pending []string
	for _, c := range syntax.Named(params) {
		switch c.Type() {
		case "parameter_modifiers":
			for _, m := range syntax.Named(c) {
				if m.Type() != "annotation" {
					pending = append(pending, b.text(m))
				}
			}
		case "parameter":
			fn.Params = append(fn.Params, Param{
				Modifiers: pending,
				Name:      b.text(syntax.First(c, "simple_identifier")),
				Type:      b.afterToken(c, ":"),
			})
			pending = nil
		}
	}

	// The result type follows the ":" after the parameter list.
	if params != nil && kind == FunctionNormal {
		past, colon := false, false
		for _, c := range syntax.Children(n) {
			switch {
			case !past:
				past = syntax.Same(c, params)
			case !colon:
				if c.Type() != ":" {
					continue
				}
				colon = true
			case c.IsNamed() && !syntax.IsComment(c):
				fn.Result = b.text(c)
			}
			if fn.Result != "" {
				break
			}
		}
	}

	// Secondary constructors hold their braces directly; functions wrap
	// them, or an "= expression" body, in function_body.
	body := syntax.First(n, "function_body")
	switch {
	case body != nil && syntax.Has(body, "{"):
		fn.Body = b.block(body)
	case body != nil:
		fn.Body = &Block{Node: Node{Line: syntax.Line(body)}}
	case kind == FunctionConstructor && syntax.Has(n, "{"):
		body = syntax.First(n, "{")
		fn.Body = b.block(n)
	}
	fn.Definition = b.definition(n, body)
	return fn
}

// definition renders a declaration header: its modifiers followed by the
// source text between the modifiers and the body.
func (b *builder) definition(n, body *sitter.Node) string {
	start := n.StartByte()
	if mods := syntax.First(n, "modifiers"); mods != nil {
		start = mods.EndByte()
	}
	end := n.EndByte()
	if body != nil {
		end = body.StartByte()
	}
	header := syntax.Span(b.src, start, end)
	if mods := strings.Join(b.modifiers(n), " "); mods != "" {
		return mods + " " + header
	}
	return header
}

func (b *builder) property(n *sitter.Node, doc string) *Property {
	p := &Property{
		Node:      Node{Line: syntax.Line(n)},
		Doc:       doc,
		Modifiers: b.modifiers(n),
	}
	if kind := syntax.First(n, "binding_pattern_kind", "val", "var"); kind != nil {
		p.Modifiers = append(p.Modifiers, b.text(kind))
	}
	if v := syntax.First(n, "variable_declaration", "multi_variable_declaration"); v != nil {
		p.Name = b.text(syntax.First(v, "simple_identifier"))
		if v.Type() == "multi_variable_declaration" {
			p.Name = b.text(v)
		}
		p.Type = b.afterToken(v, ":")
	}
	if value := b.nodeAfter(n, "="); value != nil {
		s := b.text(value)
		p.Value = &s
	}
	return p
}
