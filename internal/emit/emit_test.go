package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/sharon/internal/javadoc"
	"github.com/jward/sharon/internal/xmlout"
)

func render(t *testing.T, fn func(w *xmlout.Writer)) string {
	t.Helper()
	var buf bytes.Buffer
	w := xmlout.New(&buf, xmlout.WithNewline("\n"))
	w.StartElement("root")
	fn(w)
	w.EndDocument()
	require.NoError(t, w.Flush())
	return buf.String()
}

func TestAssignment(t *testing.T) {
	t.Parallel()
	lhs, rhs, ok := Assignment("[local]counter = 0")
	require.True(t, ok)
	assert.Equal(t, "[local]counter", lhs)
	assert.Equal(t, "0", rhs)

	lhs, rhs, ok = Assignment("same = a == b")
	require.True(t, ok)
	assert.Equal(t, "same", lhs)
	assert.Equal(t, "a == b", rhs)

	lhs, rhs, ok = Assignment("max = a >= b ? a : b")
	require.True(t, ok)
	assert.Equal(t, "max", lhs)
	assert.Equal(t, "a >= b ? a : b", rhs)

	for _, s := range []string{"a == b", "a <= b", "x != y", "a === b", "no assignment here", "= 1", "x ="} {
		_, _, ok := Assignment(s)
		assert.False(t, ok, s)
	}
}

func TestLineComment(t *testing.T) {
	t.Parallel()
	out := render(t, func(w *xmlout.Writer) {
		LineComment(w, "/// result = OK")
		LineComment(w, "/// # Check parameters")
		LineComment(w, "// ordinary comment")
		LineComment(w, "///   ")
	})
	want := "<root>\n" +
		" <assignment var=\"result\" value=\"OK\"/>\n" +
		" <description># Check parameters</description>\n" +
		"</root>\n"
	assert.Equal(t, want, out)
}

func TestDocBlock(t *testing.T) {
	t.Parallel()
	out := render(t, func(w *xmlout.Writer) {
		DocBlock(w, "/**\n * one\n * two\n */")
	})
	assert.Equal(t, "<root>\n <comment>\n  one\n  two\n </comment>\n</root>\n", out)
}

func TestMethodDoc_FixedOrder(t *testing.T) {
	t.Parallel()
	d := javadoc.NewMethodDoc()
	d.DeclareParam("", "int", "x")
	javadoc.Parse("@throws E bad\n@return r\n@param x the x\nText.\n@param <T> t", d)

	out := render(t, func(w *xmlout.Writer) { MethodDoc(w, d) })

	iDesc := bytes.Index([]byte(out), []byte("<description"))
	iType := bytes.Index([]byte(out), []byte("<typeParameter"))
	iParam := bytes.Index([]byte(out), []byte("<parameter"))
	iRet := bytes.Index([]byte(out), []byte("<return"))
	iThrows := bytes.Index([]byte(out), []byte("<throws"))
	assert.True(t, iDesc < iType && iType < iParam && iParam < iRet && iRet < iThrows, out)
	assert.Contains(t, out, "<parameter modifier=\"\" type=\"int\" name=\"x\">\n   the x\n   Text.\n  </parameter>")
	assert.Contains(t, out, "<return type=\"\">r</return>")
}

func TestClassDoc_OmitsAbsentScalars(t *testing.T) {
	t.Parallel()
	d := javadoc.NewClassDoc()
	javadoc.Parse("Doc.\n@since 1.0\n@author a, b", d)

	out := render(t, func(w *xmlout.Writer) { ClassDoc(w, d) })

	assert.Contains(t, out, `<javadoc since="1.0">`)
	assert.NotContains(t, out, "deprecated")
	assert.Contains(t, out, "<author>a</author>")
	assert.Contains(t, out, "<author>b</author>")
	assert.Contains(t, out, "<description>Doc.</description>")
}

func TestComment_Forms(t *testing.T) {
	t.Parallel()
	out := render(t, func(w *xmlout.Writer) {
		Comment(w, "// plain note")
		Comment(w, "/* plain block */")
		Comment(w, "/*/\n * count = 0\n * Reset state\n */")
		Comment(w, "/** Doc text. */")
		Comment(w, "/**/")
	})
	want := "<root>\n" +
		" <assignment var=\"count\" value=\"0\"/>\n" +
		" <description>Reset state</description>\n" +
		" <comment>Doc text.</comment>\n" +
		"</root>\n"
	assert.Equal(t, want, out)
}

func TestFold(t *testing.T) {
	t.Parallel()
	d := javadoc.NewMemberDoc()
	Fold("/** Red.\n * @since 2 */", d)
	assert.Equal(t, "Red.", d.Description())
	require.NotNil(t, d.Since)
	assert.Equal(t, "2", *d.Since)

	plain := javadoc.NewMemberDoc()
	Fold("// @since 3", plain)
	assert.Equal(t, "@since 3", plain.Description())
	assert.Nil(t, plain.Since)

	empty := javadoc.NewMemberDoc()
	Fold("", empty)
	assert.Equal(t, "", empty.Description())
}
