// Package syntax holds the tree-sitter node helpers shared by the dialect
// adapters.
package syntax

import (
	"fmt"
	"regexp"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
)

var reSpace = regexp.MustCompile(`\s+`)

// Text returns the source text of n, or "" for a nil node.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// Collapse replaces every run of whitespace with a single space and trims
// the result.
func Collapse(s string) string {
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

// Line returns the 1-based line n starts on, or 0 when it is unknown.
func Line(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	row, err := safecast.Conv[int](n.StartPoint().Row)
	if err != nil {
		return 0
	}
	return row + 1
}

// Children returns every child of n, named or not, in source order.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Named returns the named children of n in source order.
func Named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Field returns every child of n recorded under the grammar field name.
func Field(n *sitter.Node, name string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if n.FieldNameForChild(i) == name {
			if c := n.Child(i); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// First returns the first child of n whose type is one of types.
func First(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range Children(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// All returns the children of n whose type is one of types.
func All(n *sitter.Node, types ...string) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range Children(n) {
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Has reports whether n has a child, named or anonymous, of type typ.
func Has(n *sitter.Node, typ string) bool {
	return First(n, typ) != nil
}

// Find returns the first descendant of n, in pre-order, whose type is typ.
func Find(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range Children(n) {
		if c.Type() == typ {
			return c
		}
		if d := Find(c, typ); d != nil {
			return d
		}
	}
	return nil
}

// IsComment reports whether n is a comment in any of the grammars.
func IsComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment", "multiline_comment":
		return true
	}
	return false
}

// Span returns the collapsed source text between two byte offsets.
func Span(src []byte, start, end uint32) string {
	if end < start || int(end) > len(src) {
		return ""
	}
	return Collapse(string(src[start:end]))
}

// Error reports source text the grammar could not parse.
type Error struct {
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at line %d", e.Line)
}

// Check returns an *Error locating the first error or missing node under
// root, or nil when the tree parsed cleanly.
func Check(root *sitter.Node) error {
	if root == nil || !root.HasError() {
		return nil
	}
	if bad := firstError(root); bad != nil {
		return &Error{Line: Line(bad)}
	}
	return &Error{Line: Line(root)}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for _, c := range Children(n) {
		if c.HasError() || c.IsMissing() {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}

// Same reports whether a and b denote the same node of one tree.
func Same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// Doc returns the comment that documents a declaration after next has been
// seen among the comments preceding it: the nearest "/**" block, or the
// last comment when there is none.
func Doc(cur, next string) string {
	if strings.HasPrefix(cur, "/**") && !strings.HasPrefix(next, "/**") {
		return cur
	}
	return next
}

// TrailingComments returns the comments that close n, descending into its
// last child when that child is itself still open. The grammars attach
// comments that follow a header without a terminator to the header node.
func TrailingComments(n *sitter.Node) []*sitter.Node {
	children := Children(n)
	i := len(children)
	for i > 0 && IsComment(children[i-1]) {
		i--
	}
	if i == len(children) && i > 0 && children[i-1].IsNamed() {
		return TrailingComments(children[i-1])
	}
	return children[i:]
}
