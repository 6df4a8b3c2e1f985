package java

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/sharon/internal/syntax"
	"github.com/jward/sharon/internal/xmlout"
)

const greeterSource = `package com.example;

import java.util.List;
import static java.lang.Math.*;

/**
 * Greeter.
 * @author alice
 */
public class Greeter<T> extends Base implements Runnable, java.io.Serializable {
    /** Count. */
    private int count = 0, total;

    /**
     * Greets.
     * @param name who
     * @return greeting
     */
    public String greet(final String name) throws IllegalStateException {
        /// message = "hi"
        if (name == null) {
            throw new IllegalStateException();
        } else if (name.isEmpty()) {
            return "";
        } else {
            count++;
        }
        switch (count) {
            case 0:
            case 1:
                break;
            default:
                return name;
        }
        for (int i = 0; i < 3; i++) {
            continue;
        }
        for (String s : List.of("a")) {
        }
        return "hi " + name;
    }

    abstract void idle();
}

enum Color { RED(1, "r"), GREEN(2L, null) }
`

func TestParse_Declarations(t *testing.T) {
	t.Parallel()
	f, err := Parse(context.Background(), []byte(greeterSource))
	require.NoError(t, err)

	assert.Equal(t, "com.example", f.Package)
	require.Len(t, f.Imports, 2)
	assert.Equal(t, Import{Name: "java.util.List"}, f.Imports[0])
	assert.Equal(t, Import{Name: "java.lang.Math", Static: true, Wildcard: true}, f.Imports[1])

	require.Len(t, f.Types, 2)
	class, ok := f.Types[0].(*Class)
	require.True(t, ok)
	assert.Equal(t, "Greeter", class.Name)
	assert.Equal(t, []string{"public"}, class.Modifiers)
	assert.Equal(t, []string{"T"}, class.TypeParams)
	assert.Equal(t, []string{"Base"}, class.Extends)
	assert.Equal(t, []string{"Runnable", "Serializable"}, class.Implements)
	assert.True(t, strings.HasPrefix(class.Doc, "/**"))
	assert.Equal(t, 10, class.Line)

	require.Len(t, class.Members, 3)
	field, ok := class.Members[0].(*Field)
	require.True(t, ok)
	assert.Equal(t, "int", field.Type)
	assert.Equal(t, "/** Count. */", field.Doc)
	require.Len(t, field.Vars, 2)
	assert.Equal(t, "count", field.Vars[0].Name)
	require.NotNil(t, field.Vars[0].Value)
	assert.Equal(t, "0", *field.Vars[0].Value)
	assert.Nil(t, field.Vars[1].Value)

	greet, ok := class.Members[1].(*Method)
	require.True(t, ok)
	assert.Equal(t, MethodNormal, greet.Kind)
	assert.Equal(t, "String", greet.Result)
	assert.Equal(t, []Param{{Modifiers: []string{"final"}, Type: "String", Name: "name"}}, greet.Params)
	assert.Equal(t, []string{"IllegalStateException"}, greet.Throws)
	assert.Equal(t, "public String greet(final String name) throws IllegalStateException", greet.Definition)
	require.NotNil(t, greet.Body)

	idle, ok := class.Members[2].(*Method)
	require.True(t, ok)
	assert.Nil(t, idle.Body)
	assert.Empty(t, idle.Result)

	enum, ok := f.Types[1].(*Enum)
	require.True(t, ok)
	require.Len(t, enum.Entries, 2)
	assert.Equal(t, []Arg{{Kind: ArgInteger, Value: "1"}, {Kind: ArgString, Value: "r"}}, enum.Entries[0].Args)
	assert.Equal(t, []Arg{{Kind: ArgLong, Value: "2L"}, {Kind: ArgNull}}, enum.Entries[1].Args)
}

func TestParse_Statements(t *testing.T) {
	t.Parallel()
	f, err := Parse(context.Background(), []byte(greeterSource))
	require.NoError(t, err)
	greet := f.Types[0].(*Class).Members[1].(*Method)

	stmts := greet.Body.Stmts
	require.Len(t, stmts, 6)
	assert.IsType(t, &Comment{}, stmts[0])

	ifs, ok := stmts[1].(*If)
	require.True(t, ok)
	assert.Equal(t, "name == null", ifs.Cond)
	elseIf, ok := ifs.Else.(*If)
	require.True(t, ok)
	assert.Equal(t, "name.isEmpty()", elseIf.Cond)
	assert.IsType(t, &Block{}, elseIf.Else)

	sw, ok := stmts[2].(*Switch)
	require.True(t, ok)
	assert.Equal(t, "count", sw.Selector)

	loop, ok := stmts[3].(*For)
	require.True(t, ok)
	assert.Equal(t, []string{"int i = 0"}, loop.Init)
	assert.Equal(t, "i < 3", loop.Cond)
	assert.Equal(t, []string{"i++"}, loop.Update)

	each, ok := stmts[4].(*ForEach)
	require.True(t, ok)
	assert.Equal(t, "String s", each.Variable)
	assert.Equal(t, `List.of("a")`, each.Iterable)

	ret, ok := stmts[5].(*Return)
	require.True(t, ok)
	assert.Equal(t, `"hi " + name`, ret.Expr)
}

func TestParse_RenderGreeter(t *testing.T) {
	t.Parallel()
	f, err := Parse(context.Background(), []byte(greeterSource))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := xmlout.New(&buf, xmlout.WithNewline("\n"))
	w.StartDocument()
	require.NoError(t, NewVisitor(w).VisitFile(f, "/src/Greeter.java"))
	w.EndDocument()
	require.NoError(t, w.Flush())
	out := buf.String()

	assert.Contains(t, out, `<class type="class" modifier="public" name="Greeter" fullname="com.example.Greeter">`)
	assert.Contains(t, out, `<author>alice</author>`)
	assert.Contains(t, out, `<method type="normal" modifier="public" name="greet" fullname="com.example.Greeter.greet">`)
	assert.Contains(t, out, `<parameter modifier="final" type="String" name="name">who</parameter>`)
	assert.Contains(t, out, `<return type="String">greeting</return>`)
	assert.Contains(t, out, `<assignment var="message" value="&#34;hi&#34;"/>`)
	assert.Contains(t, out, `<condition type="switch" selector="count">`)
	// three if arms, then case 0 falling through into case 1, then default
	assert.Equal(t, 5, strings.Count(out, "<case>"))
	assert.Contains(t, out, "<expr>0</expr>\n      <expr>1</expr>")
	assert.Contains(t, out, `<enum modifier="" name="Color" fullname="com.example.Color">`)
}

func TestParse_DocSurvivesLaterLineComment(t *testing.T) {
	t.Parallel()
	src := "class A {\n  /** Runs. */\n  // note\n  void f() {}\n\n  // plain\n  void g() {}\n}\n"
	f, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)

	class := f.Types[0].(*Class)
	require.Len(t, class.Members, 2)
	assert.Equal(t, "/** Runs. */", class.Members[0].(*Method).Doc)
	assert.Equal(t, "// plain", class.Members[1].(*Method).Doc)
}

func TestParse_SyntaxErrorIsReported(t *testing.T) {
	t.Parallel()
	_, err := Parse(context.Background(), []byte("class Broken {\n  void m() { if ( } }\n"))
	var syntaxErr *syntax.Error
	require.ErrorAs(t, err, &syntaxErr)
	assert.Positive(t, syntaxErr.Line)
}
