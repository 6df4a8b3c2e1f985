// Package emit holds the emission rules shared by the Java and Kotlin
// visitors: documentation sub-elements, in-body pseudo comments and
// modifier lists.
package emit

import (
	"regexp"
	"strings"

	"github.com/jward/sharon/internal/javadoc"
	"github.com/jward/sharon/internal/xmlout"
)

var (
	rePseudoLine = regexp.MustCompile(`^\s*///\s*(\S|\S.*\S)?\s*$`)
)

// Modifiers joins modifier keywords with ",".
func Modifiers(mods []string) string {
	return strings.Join(mods, ",")
}

// Assignment splits a comment line shaped like "lhs = rhs" at its first
// "=" that is not part of a comparison ("==", "!=", "<=", ">="), so the
// value may itself contain comparisons.
func Assignment(content string) (lhs, rhs string, ok bool) {
	for i := 0; i < len(content); i++ {
		if content[i] != '=' {
			continue
		}
		if i+1 < len(content) && content[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.IndexByte("=!<>", content[i-1]) >= 0 {
			continue
		}
		lhs, rhs = strings.TrimSpace(content[:i]), strings.TrimSpace(content[i+1:])
		if lhs == "" || rhs == "" {
			return "", "", false
		}
		return lhs, rhs, true
	}
	return "", "", false
}

// LineComment emits a line comment found inside a body. Only "///" comments
// are emitted; ordinary "//" comments are implementation notes and dropped.
func LineComment(w *xmlout.Writer, text string) {
	m := rePseudoLine.FindStringSubmatch(text)
	if m == nil {
		return
	}
	PseudoLine(w, m[1])
}

// PseudoLine emits one pseudo-comment line: an "assignment" element when the
// line looks like "lhs = rhs", a "description" element when it is not blank,
// nothing otherwise.
func PseudoLine(w *xmlout.Writer, content string) {
	if lhs, rhs, ok := Assignment(content); ok {
		w.EmptyElement("assignment")
		w.Attr("var", lhs)
		w.Attr("value", rhs)
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}
	w.StartElement("description")
	w.Text(content)
	w.EndElement()
}

// PseudoBlock emits a "/*/ ... */" block comment line by line, each line
// following the pseudo-comment rules.
func PseudoBlock(w *xmlout.Writer, text string) {
	for _, line := range strings.Split(javadoc.Strip(text), "\n") {
		PseudoLine(w, line)
	}
}

// Comment emits a comment found among the statements of a body according to
// its form: documentation blocks, pseudo comments ("///" lines and "/*/"
// blocks) or nothing for ordinary comments.
func Comment(w *xmlout.Writer, text string) {
	switch {
	case strings.HasPrefix(text, "///"):
		LineComment(w, text)
	case strings.HasPrefix(text, "/*/"):
		PseudoBlock(w, text)
	case strings.HasPrefix(text, "/**") && text != "/**/":
		DocBlock(w, text)
	}
}

// Fold parses the comment attached to a declaration into rec. Documentation
// comments are tag-parsed, other comments only contribute description text.
func Fold(text string, rec javadoc.Record) {
	switch {
	case text == "":
	case strings.HasPrefix(text, "/**") && text != "/**/":
		javadoc.Parse(text, rec)
	default:
		javadoc.ParsePlain(text, rec)
	}
}

// DocBlock emits a documentation block comment found inside a body as a
// "comment" element with its decoration stripped.
func DocBlock(w *xmlout.Writer, text string) {
	w.StartElement("comment")
	w.Text(javadoc.Strip(text))
	w.EndElement()
}

func description(w *xmlout.Writer, text string) {
	w.StartElement("description")
	w.Text(text)
	w.EndElement()
}

func authors(w *xmlout.Writer, names []string) {
	for _, a := range names {
		w.StartElement("author")
		w.Text(a)
		w.EndElement()
	}
}

func typeParams(w *xmlout.Writer, tps *javadoc.Ordered[javadoc.TypeParam]) {
	for _, tp := range tps.Values() {
		w.StartElement("typeParameter")
		w.Attr("type", tp.Type)
		w.Text(tp.Description)
		w.EndElement()
	}
}

// ClassDoc emits the "javadoc" element of a class-like declaration.
func ClassDoc(w *xmlout.Writer, d *javadoc.ClassDoc) {
	w.StartElement("javadoc")
	w.OptAttr("since", d.Since)
	w.OptAttr("deprecated", d.Deprecated)
	w.OptAttr("serial", d.Serial)
	w.OptAttr("version", d.Version)
	authors(w, d.Authors)
	description(w, d.Description())
	typeParams(w, &d.TypeParams)
	w.EndElement()
}

// EnumDoc emits the "javadoc" element of an enum declaration.
func EnumDoc(w *xmlout.Writer, d *javadoc.EnumDoc) {
	w.StartElement("javadoc")
	w.OptAttr("since", d.Since)
	w.OptAttr("deprecated", d.Deprecated)
	w.OptAttr("serial", d.Serial)
	w.OptAttr("version", d.Version)
	authors(w, d.Authors)
	description(w, d.Description())
	w.EndElement()
}

// MemberDoc emits the "javadoc" element of an enum entry or field.
func MemberDoc(w *xmlout.Writer, d *javadoc.MemberDoc) {
	w.StartElement("javadoc")
	w.OptAttr("since", d.Since)
	w.OptAttr("deprecated", d.Deprecated)
	w.OptAttr("serial", d.Serial)
	description(w, d.Description())
	w.EndElement()
}

// MethodDoc emits the "javadoc" element of a constructor or method in the
// fixed order description, type parameters, parameters, return, throws.
func MethodDoc(w *xmlout.Writer, d *javadoc.MethodDoc) {
	w.StartElement("javadoc")
	w.OptAttr("since", d.Since)
	w.OptAttr("deprecated", d.Deprecated)
	description(w, d.Description())
	typeParams(w, &d.TypeParams)
	for _, p := range d.Params.Values() {
		w.StartElement("parameter")
		w.Attr("modifier", p.Modifier)
		w.Attr("type", p.Type)
		w.Attr("name", p.Name)
		w.Text(p.Description)
		w.EndElement()
	}
	if r := d.Return; r != nil {
		w.StartElement("return")
		w.Attr("type", r.Type)
		w.Text(r.Description)
		w.EndElement()
	}
	for _, t := range d.Throws.Values() {
		w.StartElement("throws")
		w.Attr("type", t.Type)
		w.Text(t.Description)
		w.EndElement()
	}
	w.EndElement()
}
