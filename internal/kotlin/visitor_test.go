package kotlin

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/sharon/internal/xmlout"
)

func render(t *testing.T, f *File, opts ...VisitorOption) string {
	t.Helper()
	var buf bytes.Buffer
	w := xmlout.New(&buf, xmlout.WithNewline("\n"))
	w.StartDocument()
	require.NoError(t, NewVisitor(w, opts...).VisitFile(f, "/src/Foo.kt"))
	w.EndDocument()
	require.NoError(t, w.Flush())
	return buf.String()
}

func function(stmts ...Stmt) *File {
	return &File{Decls: []Decl{&Class{
		Name: "Foo",
		Members: []Decl{&Function{
			Name:       "run",
			Definition: "fun run()",
			Body:       &Block{Stmts: stmts},
		}},
	}}}
}

func TestVisitFile_ClassWithUnitFunction(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Class{
		Name: "Foo",
		Members: []Decl{&Function{
			Name:       "bar",
			Result:     "Unit",
			Definition: "fun bar(): Unit",
			Body:       &Block{},
		}},
	}}}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<file language="kotlin" src="/src/Foo.kt">
 <class type="class" modifier="" name="Foo" fullname="Foo">
  <javadoc>
   <description/>
  </javadoc>
  <method type="normal" modifier="" name="bar" fullname="Foo.bar">
   <definition>fun bar(): Unit</definition>
   <javadoc>
    <description/>
   </javadoc>
   <code/>
  </method>
 </class>
</file>
`
	assert.Equal(t, want, render(t, f))
}

func TestVisitFile_PackageImportsAndCallback(t *testing.T) {
	t.Parallel()
	var recorded []string
	f := &File{
		Package: "a.b",
		Imports: []Import{{Name: "x.Y", Alias: "Z"}, {Name: "x.w", Wildcard: true}},
		Decls:   []Decl{&Class{Kind: KindObject, Name: "Registry"}},
	}
	out := render(t, f, OnPackage(func(pkg string) error {
		recorded = append(recorded, pkg)
		return nil
	}))

	assert.Equal(t, []string{"a.b"}, recorded)
	assert.Contains(t, out, `<package package="a.b"/>`)
	assert.Contains(t, out, `<import package="x.Y" alias="Z"/>`)
	assert.Contains(t, out, `<import package="x.w.*"/>`)
	assert.Contains(t, out, `<class type="object" modifier="" name="Registry" fullname="a.b.Registry">`)
}

func TestVisitFile_CallbackErrorStops(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var buf bytes.Buffer
	w := xmlout.New(&buf)
	err := NewVisitor(w, OnPackage(func(string) error { return boom })).
		VisitFile(&File{Package: "p"}, "/src/Foo.kt")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "record package p")
}

func TestVisitFile_PrimaryConstructorAndInit(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Class{
		Name:       "Point",
		Modifiers:  []string{"data"},
		Extends:    []string{"Shape"},
		Implements: []string{"Comparable"},
		Ctor: &Constructor{
			Params: []Param{
				{Modifiers: []string{"val"}, Type: "Int", Name: "x"},
				{Modifiers: []string{"val"}, Type: "Int", Name: "y"},
			},
			Definition: "(val x: Int, val y: Int)",
		},
		Inits: []*Block{{Stmts: []Stmt{&Comment{Node: Node{Line: 3}, Text: "/// checked = true"}}}},
	}}}
	out := render(t, f)

	assert.Contains(t, out, `<class type="class" modifier="data" name="Point" fullname="Point">`)
	assert.Contains(t, out, `<extends name="Shape"/>`)
	assert.Contains(t, out, `<implements name="Comparable"/>`)
	assert.Contains(t, out, `<method type="constructor" modifier="">`)
	assert.Contains(t, out, `<definition>(val x: Int, val y: Int)</definition>`)
	assert.Contains(t, out, `<parameter modifier="val" type="Int" name="x"/>`)
	assert.Contains(t, out, `<assignment var="checked" value="true"/>`)
	assert.NotContains(t, out, `type="initializer"`)
}

func TestVisitFile_ClassTagsDescribeConstructorParams(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Class{
		Doc:  "/**\n * A point.\n * @param x the abscissa\n * @property y the ordinate\n * @param z unknown\n */",
		Name: "Point",
		Ctor: &Constructor{
			Params: []Param{
				{Modifiers: []string{"val"}, Type: "Int", Name: "x"},
				{Modifiers: []string{"val"}, Type: "Int", Name: "y"},
			},
		},
	}}}
	out := render(t, f)

	assert.Contains(t, out, `<parameter modifier="val" type="Int" name="x">the abscissa</parameter>`)
	assert.Contains(t, out, `<parameter modifier="val" type="Int" name="y">the ordinate</parameter>`)
	assert.NotContains(t, out, `name="z"`)
}

func TestVisitFile_InitWithoutConstructor(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Class{
		Kind:  KindObject,
		Name:  "Once",
		Inits: []*Block{{}},
	}}}
	out := render(t, f)
	assert.Contains(t, out, `<method type="initializer" modifier="">`)
	assert.NotContains(t, out, `type="constructor"`)
}

func TestVisitFile_FunctionDoc(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Function{
		Doc:        "/**\n * Sums.\n * @param n count\n * @return the sum\n */",
		Modifiers:  []string{"private"},
		TypeParams: []string{"T"},
		Receiver:   "List<T>",
		Name:       "sum",
		Params:     []Param{{Type: "Int", Name: "n"}},
		Result:     "Int",
		Definition: "private fun <T> List<T>.sum(n: Int): Int",
	}}}
	out := render(t, f)

	assert.Contains(t, out, `<method type="normal" modifier="private" name="sum" fullname="sum">`)
	assert.Contains(t, out, `<typeParameter type="T"/>`)
	assert.Contains(t, out, `<parameter modifier="" type="List&lt;T&gt;" name="this"/>`)
	assert.Contains(t, out, `<parameter modifier="" type="Int" name="n">count</parameter>`)
	assert.Contains(t, out, `<return type="Int">the sum</return>`)
	assert.NotContains(t, out, "<code")
}

func TestVisitFile_SecondaryConstructorHasNoName(t *testing.T) {
	t.Parallel()
	f := &File{Decls: []Decl{&Class{
		Name: "Foo",
		Members: []Decl{&Function{
			Kind:       FunctionConstructor,
			Params:     []Param{{Type: "String", Name: "s"}},
			Result:     "Foo",
			Definition: "constructor(s: String)",
			Body:       &Block{},
		}},
	}}}
	out := render(t, f)
	assert.Contains(t, out, `<method type="constructor" modifier="">`)
	assert.NotContains(t, out, "<return")
}

func TestVisitFile_EnumAndProperty(t *testing.T) {
	t.Parallel()
	value := "0"
	f := &File{Decls: []Decl{
		&Class{
			Kind: KindEnum,
			Doc:  "/**\n * Colors.\n * @since 2\n */",
			Name: "Color",
			Entries: []EnumEntry{
				{Name: "RED", Args: []Arg{{Kind: "integer", Value: "1"}, {Kind: "null", Value: "null"}}},
				{Name: "GREEN"},
			},
		},
		&Property{
			Doc:       "/** Counter. */",
			Modifiers: []string{"var"},
			Name:      "count",
			Type:      "Int",
			Value:     &value,
		},
	}}
	out := render(t, f)

	assert.Contains(t, out, `<enum modifier="" name="Color" fullname="Color">`)
	assert.Contains(t, out, `<javadoc since="2">`)
	assert.Contains(t, out, `<argument type="integer">1</argument>`)
	assert.Contains(t, out, `<argument type="null"/>`)
	assert.Contains(t, out, `<entry name="GREEN">`)
	assert.Contains(t, out, `<field modifier="var" type="Int" name="count" value="0">`)
	assert.Contains(t, out, `<description>Counter.</description>`)
}

func TestVisitFile_When(t *testing.T) {
	t.Parallel()
	out := render(t, function(&When{
		Subject: "x",
		Entries: []WhenEntry{
			{Conds: []string{"1", "2"}, Body: &Jump{Keyword: "return", Expr: "a"}},
			{Else: true, Body: &Block{}},
		},
	}))

	assert.Contains(t, out, `<condition type="when" selector="x">`)
	assert.Contains(t, out, "<expr>1</expr>\n      <expr>2</expr>")
	assert.Contains(t, out, `<return expr="a"/>`)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("<case>")))
}

func TestVisitFile_LoopsAndJumps(t *testing.T) {
	t.Parallel()
	out := render(t, function(
		&For{Node: Node{Line: 1}, Variable: "i", Iterable: "0..3", Body: &Jump{Keyword: "continue"}},
		&While{Node: Node{Line: 2}, Cond: "busy", Body: &Jump{Keyword: "break", Label: "outer"}},
		&DoWhile{Node: Node{Line: 3}, Cond: "again", Body: &Block{}},
		&Jump{Node: Node{Line: 4}, Keyword: "throw", Expr: "IllegalStateException()"},
	))

	assert.Contains(t, out, `<loop type="for-each">`)
	assert.Contains(t, out, `<iterator expression="0..3"/>`)
	assert.Contains(t, out, `<variable expression="i"/>`)
	assert.Contains(t, out, `<continue/>`)
	assert.Contains(t, out, `<loop type="while">`)
	assert.Contains(t, out, `<break label="outer"/>`)
	assert.Contains(t, out, `<loop type="do">`)
	assert.Contains(t, out, `<condition expr="again"/>`)
	assert.Contains(t, out, `<throw expr="IllegalStateException()"/>`)
}

func TestVisitFile_IfChainAndTry(t *testing.T) {
	t.Parallel()
	out := render(t, function(
		&If{Node: Node{Line: 1}, Cond: "a", Then: &Block{}, Else: &If{Cond: "b", Then: &Block{}, Else: &Block{}}},
		&Try{
			Node:    Node{Line: 2},
			Body:    &Block{},
			Catches: []Catch{{Type: "IOException", Name: "e", Body: &Block{}}},
			Finally: &Block{},
		},
	))

	assert.Contains(t, out, `<condition type="if">`)
	assert.Contains(t, out, "<expr>a</expr>")
	assert.Contains(t, out, "<expr>b</expr>")
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("<case>")))
	assert.Contains(t, out, `<catch type="IOException" name="e">`)
	assert.Contains(t, out, "<finally>")
}

func TestVisitFile_StatementsSortedByPosition(t *testing.T) {
	t.Parallel()
	out := render(t, function(
		&Comment{Node: Node{Line: 9}, Text: "/// second"},
		&Opaque{Node: Node{Line: 5}, Kind: "call_expression"},
		&Comment{Node: Node{Line: 2}, Text: "/// first"},
	))
	first := bytes.Index([]byte(out), []byte("first"))
	second := bytes.Index([]byte(out), []byte("second"))
	require.Positive(t, first)
	assert.Less(t, first, second)
}

func TestVisitFile_UnsupportedNodes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := xmlout.New(&buf)
	err := NewVisitor(w).VisitFile(function(&UnknownStmt{Node: Node{Line: 7}, Kind: "mystery"}), "x.kt")
	var unsupportedErr *UnsupportedNodeError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, "mystery", unsupportedErr.Kind)
	assert.Equal(t, 7, unsupportedErr.Line)

	err = NewVisitor(xmlout.New(&buf)).VisitFile(&File{Decls: []Decl{&UnknownDecl{Kind: "weird"}}}, "x.kt")
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, 0, unsupportedErr.Line)
}
