package javadoc

import (
	"regexp"
	"strings"
)

// TypeParam documents a generic type parameter.
type TypeParam struct {
	Type        string
	Description string
}

// Param documents a constructor or method parameter. Modifier and Type come
// from the declaration, Description from the comment.
type Param struct {
	Modifier    string
	Type        string
	Name        string
	Description string
}

// Return documents a method result.
type Return struct {
	Type        string
	Description string
}

// Throws documents an exception a constructor or method may raise.
type Throws struct {
	Type        string
	Description string
}

var (
	reClassParam  = regexp.MustCompile(`(?s)^<(\w+)>(?:\s+(.*))?$`)
	reMethodParam = regexp.MustCompile(`(?s)^(?:(\w+)|<(\w+)>)(?:\s+(.*))?$`)
	reThrows      = regexp.MustCompile(`(?s)^([\w.$]+)(?:\s+(.*))?$`)
)

type description struct {
	lines []string
}

func (d *description) appendDescription(s string) {
	d.lines = append(d.lines, s)
}

// Description returns the free text, one appended fragment per line.
func (d *description) Description() string {
	return strings.Join(d.lines, "\n")
}

func splitAuthors(value string) []string {
	var out []string
	for _, a := range strings.Split(value, ", ") {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ClassDoc is the documentation of a class, interface, record or annotation
// type.
type ClassDoc struct {
	description
	TypeParams Ordered[TypeParam]
	Authors    []string
	Since      *string
	Deprecated *string
	Serial     *string
	Version    *string
}

// NewClassDoc returns a ClassDoc pre-populated with the declared type
// parameter names so that undocumented ones are still listed.
func NewClassDoc(typeParams ...string) *ClassDoc {
	d := &ClassDoc{}
	for _, tp := range typeParams {
		d.TypeParams.Put(tp, TypeParam{Type: tp})
	}
	return d
}

func (d *ClassDoc) foldTag(name, value string) bool {
	switch name {
	case "param":
		if m := reClassParam.FindStringSubmatch(value); m != nil {
			tp := d.TypeParams.getOrPut(m[1], func() TypeParam { return TypeParam{Type: m[1]} })
			tp.Description = m[2]
		}
		return true
	case "author":
		d.Authors = append(d.Authors, splitAuthors(value)...)
		return true
	}
	if p := scalarField(name, &d.Since, &d.Deprecated, &d.Serial, &d.Version); p != nil {
		*p = &value
		return true
	}
	return false
}

// MethodDoc is the documentation of a method or, when built with
// NewConstructorDoc, of a constructor (which has no result).
type MethodDoc struct {
	description
	TypeParams Ordered[TypeParam]
	Params     Ordered[Param]
	Return     *Return
	Throws     Ordered[Throws]
	Since      *string
	Deprecated *string

	constructor bool
}

// NewMethodDoc returns an empty method documentation record.
func NewMethodDoc() *MethodDoc {
	return &MethodDoc{}
}

// NewConstructorDoc returns an empty constructor documentation record.
// Constructors do not recognize @return.
func NewConstructorDoc() *MethodDoc {
	return &MethodDoc{constructor: true}
}

// IsConstructor reports whether the record documents a constructor.
func (d *MethodDoc) IsConstructor() bool {
	return d.constructor
}

// DeclareTypeParam registers a declared type parameter.
func (d *MethodDoc) DeclareTypeParam(name string) {
	d.TypeParams.Put(name, TypeParam{Type: name})
}

// DeclareParam registers a declared parameter in declaration order.
func (d *MethodDoc) DeclareParam(modifier, typ, name string) {
	d.Params.Put(name, Param{Modifier: modifier, Type: typ, Name: name})
}

// DeclareReturn registers a non-void result type.
func (d *MethodDoc) DeclareReturn(typ string) {
	d.Return = &Return{Type: typ}
}

// DeclareThrows registers a declared exception type.
func (d *MethodDoc) DeclareThrows(typ string) {
	d.Throws.Put(typ, Throws{Type: typ})
}

func (d *MethodDoc) foldTag(name, value string) bool {
	switch name {
	case "param":
		m := reMethodParam.FindStringSubmatch(value)
		if m == nil {
			return true
		}
		switch {
		case m[1] != "":
			p := d.Params.getOrPut(m[1], func() Param { return Param{Name: m[1]} })
			p.Description = m[3]
		case m[2] != "":
			tp := d.TypeParams.getOrPut(m[2], func() TypeParam { return TypeParam{Type: m[2]} })
			tp.Description = m[3]
		}
		return true
	case "return":
		if d.constructor {
			return false
		}
		if d.Return == nil {
			d.Return = &Return{}
		}
		d.Return.Description = value
		return true
	case "throws", "exception":
		if m := reThrows.FindStringSubmatch(value); m != nil {
			t := d.Throws.getOrPut(m[1], func() Throws { return Throws{Type: m[1]} })
			t.Description = m[2]
		}
		return true
	}
	if p := scalarField(name, &d.Since, &d.Deprecated, nil, nil); p != nil {
		*p = &value
		return true
	}
	return false
}

// EnumDoc is the documentation of an enum declaration.
type EnumDoc struct {
	description
	Authors    []string
	Since      *string
	Deprecated *string
	Serial     *string
	Version    *string
}

// NewEnumDoc returns an empty enum documentation record.
func NewEnumDoc() *EnumDoc {
	return &EnumDoc{}
}

func (d *EnumDoc) foldTag(name, value string) bool {
	if name == "author" {
		d.Authors = append(d.Authors, splitAuthors(value)...)
		return true
	}
	if p := scalarField(name, &d.Since, &d.Deprecated, &d.Serial, &d.Version); p != nil {
		*p = &value
		return true
	}
	return false
}

// MemberDoc is the documentation of an enum entry or a field. It recognizes
// only @since, @deprecated and @serial.
type MemberDoc struct {
	description
	Since      *string
	Deprecated *string
	Serial     *string
}

// NewMemberDoc returns an empty member documentation record.
func NewMemberDoc() *MemberDoc {
	return &MemberDoc{}
}

func (d *MemberDoc) foldTag(name, value string) bool {
	if p := scalarField(name, &d.Since, &d.Deprecated, &d.Serial, nil); p != nil {
		*p = &value
		return true
	}
	return false
}

// scalarField maps a scalar tag name to the field a kind declares for it.
// A nil slot means the kind does not recognize that tag.
func scalarField(name string, since, deprecated, serial, version **string) **string {
	switch name {
	case "since":
		return since
	case "deprecated":
		return deprecated
	case "serial":
		return serial
	case "version":
		return version
	}
	return nil
}
