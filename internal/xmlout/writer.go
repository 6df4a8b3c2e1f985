// Package xmlout implements a streaming, indentation-aware XML writer.
//
// Elements that receive no content collapse to a single self-closing tag,
// single-line text stays inline with its element, and multi-line text is
// written one trimmed line per indented text row. Attributes with an absent
// value are omitted rather than written empty.
package xmlout

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

const prologue = `<?xml version="1.0" encoding="UTF-8"?>`

type pendingTag int

const (
	pendingNone  pendingTag = iota
	pendingOpen             // "<name attrs" written, may still receive attributes
	pendingEmpty            // "<name attrs" of an empty element, closes with "/>"
)

type element struct {
	name      string
	content   bool // inline text written
	multiline bool // child elements or multi-line text written
}

// Writer streams an indented XML document. Writer methods do not return
// errors; the first error is retained and reported by Err, Flush and Close,
// in the manner of bufio.Writer.
type Writer struct {
	out     *bufio.Writer
	closer  io.Closer
	indent  int
	newline string

	stack   []element
	pending pendingTag
	wrote   bool
	err     error
}

// Option configures a Writer.
type Option func(*Writer)

// WithIndent sets the number of spaces written per nesting level.
func WithIndent(width int) Option {
	return func(w *Writer) {
		if width >= 0 {
			w.indent = width
		}
	}
}

// WithNewline overrides the line separator. The default is the host
// platform's separator.
func WithNewline(sep string) Option {
	return func(w *Writer) {
		if sep != "" {
			w.newline = sep
		}
	}
}

// DefaultNewline returns the host platform's line separator.
func DefaultNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// New returns a Writer that writes to out.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:     bufio.NewWriter(out),
		indent:  1,
		newline: DefaultNewline(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create opens path for writing (truncating it) and returns a Writer bound
// to it. Close flushes the document and closes the file.
func Create(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("xmlout: create %s: %w", path, err)
	}
	w := New(f, opts...)
	w.closer = f
	return w, nil
}

// Err returns the first error encountered by the Writer.
func (w *Writer) Err() error {
	return w.err
}

// Depth returns the number of currently open elements.
func (w *Writer) Depth() int {
	return len(w.stack)
}

// StartDocument writes the XML prologue.
func (w *Writer) StartDocument() {
	if w.err != nil {
		return
	}
	if w.wrote {
		w.fail(fmt.Errorf("xmlout: prologue after content"))
		return
	}
	w.write(prologue)
	w.wrote = true
}

// EndDocument closes every open element and terminates the last line.
func (w *Writer) EndDocument() {
	for len(w.stack) > 0 && w.err == nil {
		w.EndElement()
	}
	w.closePending()
	w.write(w.newline)
}

// StartElement opens a new element one level deeper than its parent.
func (w *Writer) StartElement(name string) {
	if w.err != nil {
		return
	}
	w.beginChild()
	w.write("<" + name)
	w.stack = append(w.stack, element{name: name})
	w.pending = pendingOpen
}

// EmptyElement writes an element that takes attributes but no content.
func (w *Writer) EmptyElement(name string) {
	if w.err != nil {
		return
	}
	w.beginChild()
	w.write("<" + name)
	w.pending = pendingEmpty
}

// EndElement closes the innermost open element. An element that received
// neither text nor children is closed as "<name/>".
func (w *Writer) EndElement() {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.fail(fmt.Errorf("xmlout: end element without open element"))
		return
	}
	top := w.stack[len(w.stack)-1]
	if w.pending == pendingOpen {
		w.stack = w.stack[:len(w.stack)-1]
		w.write("/>")
		w.pending = pendingNone
		return
	}
	w.closePending()
	w.stack = w.stack[:len(w.stack)-1]
	if top.multiline {
		w.lineBreak(len(w.stack))
	}
	w.write("</" + top.name + ">")
}

// Attr writes an attribute on the element whose start tag is still open.
func (w *Writer) Attr(name, value string) {
	if w.err != nil {
		return
	}
	if w.pending == pendingNone {
		w.fail(fmt.Errorf("xmlout: attribute %q outside of a start tag", name))
		return
	}
	w.write(" " + name + `="`)
	w.escape(value)
	w.write(`"`)
}

// OptAttr writes the attribute only when value is non-nil. A non-nil empty
// string produces an empty attribute.
func (w *Writer) OptAttr(name string, value *string) {
	if value == nil {
		return
	}
	w.Attr(name, *value)
}

// Text writes character data inside the innermost element. Line endings are
// normalized and each line is trimmed; leading and trailing blank lines are
// dropped. A single line is written inline, several lines are written as
// separate indented rows.
func (w *Writer) Text(s string) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.fail(fmt.Errorf("xmlout: text outside of an element"))
		return
	}
	lines := SplitLines(s)
	if len(lines) == 0 {
		return
	}
	w.closePending()
	top := &w.stack[len(w.stack)-1]
	if len(lines) == 1 && !top.content && !top.multiline {
		w.escape(lines[0])
		top.content = true
		return
	}
	for _, line := range lines {
		if line == "" {
			w.write(w.newline)
			continue
		}
		w.lineBreak(len(w.stack))
		w.escape(line)
	}
	top.multiline = true
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.fail(fmt.Errorf("xmlout: flush: %w", err))
	}
	return w.err
}

// Close flushes the Writer and closes the underlying file when the Writer
// was obtained from Create. It does not finish the document; call
// EndDocument first.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("xmlout: close: %w", cerr)
		}
		w.closer = nil
	}
	return err
}

// SplitLines normalizes line endings, trims every line and drops leading and
// trailing blank lines.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}

func (w *Writer) beginChild() {
	w.closePending()
	if n := len(w.stack); n > 0 {
		w.stack[n-1].multiline = true
	}
	if w.wrote {
		w.lineBreak(len(w.stack))
	}
	w.wrote = true
}

func (w *Writer) closePending() {
	switch w.pending {
	case pendingOpen:
		w.write(">")
	case pendingEmpty:
		w.write("/>")
	}
	w.pending = pendingNone
}

func (w *Writer) lineBreak(depth int) {
	w.write(w.newline)
	w.write(strings.Repeat(" ", depth*w.indent))
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.fail(fmt.Errorf("xmlout: write: %w", err))
	}
}

func (w *Writer) escape(s string) {
	if w.err != nil {
		return
	}
	if err := xml.EscapeText(w.out, []byte(s)); err != nil {
		w.fail(fmt.Errorf("xmlout: write: %w", err))
	}
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
