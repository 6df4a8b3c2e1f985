// Package javadoc parses structured documentation comments (Javadoc and
// KDoc) into per-declaration-kind records.
//
// A comment is first stripped of its block decoration, then split at tag
// markers ("@name" at the start of a line). The text before the first marker
// is the description; every other segment is the value of the preceding
// marker and is folded into the record by the record's own tag recognizer.
// Tags a record does not recognize are kept in the description verbatim.
package javadoc

import (
	"regexp"
	"strings"
)

// Record is a documentation record that can absorb description text and
// recognize tags. Implemented by ClassDoc, MethodDoc, EnumDoc and MemberDoc.
type Record interface {
	Description() string
	appendDescription(s string)
	foldTag(name, value string) bool
}

var (
	reNewline    = regexp.MustCompile("\r\n|\r|\n")
	reDecoration = regexp.MustCompile(`^\s*[/*]*\s*(\S|\S.*\S)?\s*$`)
	reTag        = regexp.MustCompile(`(?m)^@(\w+)(?:[ \t]+|$)`)
)

// Strip removes comment decoration ("/**", leading "*", "*/") from every
// physical line and rejoins the trimmed lines with "\n".
func Strip(comment string) string {
	lines := reNewline.Split(comment, -1)
	for i, l := range lines {
		l = strings.TrimRight(l, " \t")
		l = strings.TrimSuffix(l, "*/")
		if m := reDecoration.FindStringSubmatch(l); m != nil {
			lines[i] = m[1]
		} else {
			lines[i] = strings.TrimSpace(l)
		}
	}
	return strings.Join(lines, "\n")
}

// Parse strips comment and folds its description and tags into rec.
func Parse(comment string, rec Record) {
	content := Strip(comment)
	matches := reTag.FindAllStringSubmatchIndex(content, -1)

	start := 0
	name := ""
	tagged := false
	for _, m := range matches {
		push(rec, tagged, name, content[start:m[0]])
		name = content[m[2]:m[3]]
		tagged = true
		start = m[1]
	}
	push(rec, tagged, name, content[start:])
}

// Tag is one tag segment of a documentation comment.
type Tag struct {
	Name  string
	Value string
}

// Tags returns the tag segments of a documentation comment in source order.
func Tags(comment string) []Tag {
	content := Strip(comment)
	matches := reTag.FindAllStringSubmatchIndex(content, -1)
	tags := make([]Tag, 0, len(matches))
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		tags = append(tags, Tag{
			Name:  content[m[2]:m[3]],
			Value: strings.TrimSpace(content[m[1]:end]),
		})
	}
	return tags
}

// ParsePlain appends an ordinary (non-documentation) comment to the
// description without tag recognition.
func ParsePlain(comment string, rec Record) {
	if content := strings.TrimSpace(Strip(comment)); content != "" {
		rec.appendDescription(content)
	}
}

func push(rec Record, tagged bool, name, raw string) {
	value := strings.TrimSpace(raw)
	if !tagged {
		if value != "" {
			rec.appendDescription(value)
		}
		return
	}
	if rec.foldTag(name, value) {
		return
	}
	rec.appendDescription(strings.TrimSpace("@" + name + " " + value))
}
