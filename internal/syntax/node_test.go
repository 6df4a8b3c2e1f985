package syntax

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJava(t *testing.T, src string) *sitter.Node {
	t.Helper()
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode()
}

func TestCollapse(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b c", Collapse("  a\n\t b   c "))
}

func TestNodeHelpers(t *testing.T) {
	t.Parallel()
	src := "package a.b;\n\nclass Foo {\n  int x;\n}\n"
	root := parseJava(t, src)

	pkg := First(root, "package_declaration")
	require.NotNil(t, pkg)
	assert.Equal(t, 1, Line(pkg))

	class := First(root, "class_declaration")
	require.NotNil(t, class)
	assert.Equal(t, 3, Line(class))
	assert.True(t, Has(class, "class"))
	assert.Equal(t, "Foo", Text(class.ChildByFieldName("name"), []byte(src)))
	require.Len(t, Field(class, "body"), 1)

	field := Find(class, "variable_declarator")
	require.NotNil(t, field)
	assert.Equal(t, "x", Text(field, []byte(src)))

	assert.Len(t, All(root, "package_declaration", "class_declaration"), 2)
	assert.Empty(t, Children(nil))
	assert.Equal(t, 0, Line(nil))
	assert.Equal(t, "", Text(nil, []byte(src)))
}

func TestSpan(t *testing.T) {
	t.Parallel()
	src := []byte("public  int\n foo()")
	assert.Equal(t, "public int foo()", Span(src, 0, uint32(len(src))))
	assert.Equal(t, "", Span(src, 5, 2))
}

func TestCheck(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Check(parseJava(t, "class Ok {}")))

	err := Check(parseJava(t, "class Ok {}\n\nclass Broken { int }\n"))
	var syntaxErr *Error
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 3, syntaxErr.Line)
}

func TestDoc_PrefersNearestDocBlock(t *testing.T) {
	t.Parallel()
	doc := Doc("", "/** Documented. */")
	doc = Doc(doc, "// note")
	assert.Equal(t, "/** Documented. */", doc)

	assert.Equal(t, "/** Second. */", Doc("/** First. */", "/** Second. */"))
	assert.Equal(t, "// later", Doc("// earlier", "// later"))
}

func TestTrailingComments(t *testing.T) {
	t.Parallel()
	src := "class Foo {\n  int x; // after\n}\n"
	root := parseJava(t, src)

	class := First(root, "class_declaration")
	require.NotNil(t, class)
	assert.Empty(t, TrailingComments(class), "comments before a closing brace do not trail the class")
	assert.Empty(t, TrailingComments(nil))

	tail := TrailingComments(root)
	require.Len(t, tail, 0)

	src = "class Foo {}\n/* one */\n// two\n"
	root = parseJava(t, src)
	tail = TrailingComments(root)
	require.Len(t, tail, 2)
	assert.Equal(t, "// two", Text(tail[1], []byte(src)))
}
