package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip_BlockDecoration(t *testing.T) {
	t.Parallel()
	got := Strip("/**\n   * First line.\n   *   indented\n   */")
	assert.Equal(t, "\nFirst line.\nindented\n", got)
}

func TestStrip_SingleLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Short doc.", Strip("/** Short doc. */"))
}

func TestParse_MethodParamAndReturn(t *testing.T) {
	t.Parallel()
	doc := NewMethodDoc()
	Parse("@param x the x value\n@return the result", doc)

	p, ok := doc.Params.Get("x")
	require.True(t, ok)
	assert.Equal(t, "the x value", p.Description)
	require.NotNil(t, doc.Return)
	assert.Equal(t, "the result", doc.Return.Description)
	assert.Equal(t, 0, doc.Throws.Len())
	assert.Equal(t, "", doc.Description())
}

func TestParse_MethodFullComment(t *testing.T) {
	t.Parallel()
	doc := NewMethodDoc()
	doc.DeclareTypeParam("T")
	doc.DeclareParam("final", "String", "name")
	doc.DeclareParam("", "int", "count")
	doc.DeclareReturn("int")
	doc.DeclareThrows("IOException")

	Parse(`/**
 * Does the thing.
 * Second line.
 *
 * @param count how many
 * @param name the name
 *        continued
 * @param <T> element type
 * @return status code
 * @throws IOException when the disk is gone
 * @throws java.lang.IllegalStateException bad state
 * @since 1.2
 * @see Other
 */`, doc)

	assert.Equal(t, "Does the thing.\nSecond line.\n@see Other", doc.Description())
	assert.Equal(t, []string{"name", "count"}, doc.Params.Keys())
	name, _ := doc.Params.Get("name")
	assert.Equal(t, "final", name.Modifier)
	assert.Equal(t, "String", name.Type)
	assert.Equal(t, "the name\ncontinued", name.Description)
	tp, _ := doc.TypeParams.Get("T")
	assert.Equal(t, "element type", tp.Description)
	assert.Equal(t, "int", doc.Return.Type)
	assert.Equal(t, "status code", doc.Return.Description)
	assert.Equal(t, []string{"IOException", "java.lang.IllegalStateException"}, doc.Throws.Keys())
	require.NotNil(t, doc.Since)
	assert.Equal(t, "1.2", *doc.Since)
}

func TestParse_RepeatedReturnOverwrites(t *testing.T) {
	t.Parallel()
	doc := NewMethodDoc()
	Parse("@return first\n@return second", doc)
	assert.Equal(t, "second", doc.Return.Description)
}

func TestParse_RepeatedThrowsKeepsPosition(t *testing.T) {
	t.Parallel()
	doc := NewMethodDoc()
	Parse("@throws A one\n@exception B two\n@throws A three", doc)
	assert.Equal(t, []string{"A", "B"}, doc.Throws.Keys())
	a, _ := doc.Throws.Get("A")
	assert.Equal(t, "three", a.Description)
}

func TestParse_ConstructorRejectsReturn(t *testing.T) {
	t.Parallel()
	doc := NewConstructorDoc()
	Parse("Builds it.\n@return nothing", doc)
	assert.Nil(t, doc.Return)
	assert.Equal(t, "Builds it.\n@return nothing", doc.Description())
}

func TestParse_ClassTags(t *testing.T) {
	t.Parallel()
	doc := NewClassDoc("K", "V")
	Parse(`/**
 * A map.
 * @param <V> value type
 * @param ignored plain params are not class tags
 * @author alice, bob
 * @author carol
 * @version 3
 * @deprecated
 */`, doc)

	assert.Equal(t, "A map.", doc.Description())
	assert.Equal(t, []string{"K", "V"}, doc.TypeParams.Keys())
	v, _ := doc.TypeParams.Get("V")
	assert.Equal(t, "value type", v.Description)
	assert.Equal(t, []string{"alice", "bob", "carol"}, doc.Authors)
	require.NotNil(t, doc.Version)
	assert.Equal(t, "3", *doc.Version)
	require.NotNil(t, doc.Deprecated)
	assert.Equal(t, "", *doc.Deprecated)
	assert.Nil(t, doc.Since)
}

func TestParse_MemberIgnoresVersionAndAuthor(t *testing.T) {
	t.Parallel()
	doc := NewMemberDoc()
	Parse("Red.\n@since 2\n@version 9\n@author x", doc)

	require.NotNil(t, doc.Since)
	assert.Equal(t, "2", *doc.Since)
	assert.Equal(t, "Red.\n@version 9\n@author x", doc.Description())
}

func TestParse_EnumTags(t *testing.T) {
	t.Parallel()
	doc := NewEnumDoc()
	Parse("Colors.\n@serial include\n@author dan", doc)
	require.NotNil(t, doc.Serial)
	assert.Equal(t, "include", *doc.Serial)
	assert.Equal(t, []string{"dan"}, doc.Authors)
}

func TestParse_InlineAtSignIsNotATag(t *testing.T) {
	t.Parallel()
	doc := NewMethodDoc()
	Parse("Mail me at a@b.c or use {@link Foo}.", doc)
	assert.Equal(t, "Mail me at a@b.c or use {@link Foo}.", doc.Description())
	assert.Equal(t, 0, doc.Params.Len())
}

func TestParsePlain(t *testing.T) {
	t.Parallel()
	doc := NewClassDoc()
	ParsePlain("/* @param <T> not parsed */", doc)
	assert.Equal(t, "@param <T> not parsed", doc.Description())
	assert.Equal(t, 0, doc.TypeParams.Len())
}

func TestOrdered_PutKeepsPosition(t *testing.T) {
	t.Parallel()
	var o Ordered[int]
	o.Put("a", 1)
	o.Put("b", 2)
	o.Put("a", 3)
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	vals := o.Values()
	assert.Equal(t, 3, *vals[0])
	assert.Equal(t, 2, *vals[1])
}

func TestTags_SourceOrder(t *testing.T) {
	t.Parallel()
	tags := Tags("/**\n * A point.\n * @param x the abscissa\n *   continued\n * @property y the ordinate\n * @since 2\n */")
	assert.Equal(t, []Tag{
		{Name: "param", Value: "x the abscissa\ncontinued"},
		{Name: "property", Value: "y the ordinate"},
		{Name: "since", Value: "2"},
	}, tags)
	assert.Empty(t, Tags("/** No tags here. */"))
}
