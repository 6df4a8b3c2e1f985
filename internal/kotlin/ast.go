package kotlin

import "math"

// File is the syntax model of one Kotlin source file or script.
type File struct {
	Package string
	Imports []Import
	Decls   []Decl
}

// Import is one import directive.
type Import struct {
	Name     string
	Alias    string
	Wildcard bool
}

// Node carries the 1-based source line of a declaration or statement;
// zero means unknown.
type Node struct {
	Line int
}

// Pos returns the line used to order siblings. Unknown positions sort last.
func (n Node) Pos() int {
	if n.Line <= 0 {
		return math.MaxInt
	}
	return n.Line
}

// Decl is a declaration. The set of implementations is closed: Class,
// Function, Property and UnknownDecl.
type Decl interface {
	Pos() int
	decl()
}

// ClassKind distinguishes the class-like declarations.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
	KindObject
	KindCompanion
)

func (k ClassKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindCompanion:
		return "companion"
	}
	return "class"
}

// Class is a class, interface, enum class, object or companion object.
type Class struct {
	Node
	Doc        string
	Kind       ClassKind
	Modifiers  []string
	Name       string
	TypeParams []string
	Extends    []string // supertypes invoked with a constructor call
	Implements []string
	Ctor       *Constructor // primary constructor, nil when absent
	Inits      []*Block     // init blocks in source order
	Entries    []EnumEntry
	Members    []Decl
}

// Constructor is a primary constructor.
type Constructor struct {
	Node
	Modifiers  []string
	Params     []Param
	Definition string
}

// EnumEntry is one enum class entry.
type EnumEntry struct {
	Node
	Doc  string
	Name string
	Args []Arg
}

// Arg is an enum entry argument. Kind is one of null, boolean, char,
// integer, long, double, string or composite.
type Arg struct {
	Kind  string
	Value string
}

// FunctionKind distinguishes functions from secondary constructors.
type FunctionKind int

const (
	FunctionNormal FunctionKind = iota
	FunctionConstructor
)

// Function is a function or secondary constructor.
type Function struct {
	Node
	Kind       FunctionKind
	Doc        string
	Modifiers  []string
	TypeParams []string
	Receiver   string // extension receiver type
	Name       string
	Params     []Param
	Result     string // "" when not declared
	Definition string
	Body       *Block // nil when the function has no body
}

// Param is a function value parameter or primary constructor parameter.
// Modifiers include "val" or "var" for properties declared in a primary
// constructor.
type Param struct {
	Modifiers []string
	Type      string
	Name      string
}

// Property is a property declaration.
type Property struct {
	Node
	Doc       string
	Modifiers []string
	Name      string
	Type      string
	Value     *string
}

// UnknownDecl is a declaration kind the model does not cover.
type UnknownDecl struct {
	Node
	Kind string
}

func (*Class) decl()       {}
func (*Function) decl()    {}
func (*Property) decl()    {}
func (*UnknownDecl) decl() {}

// Stmt is a statement inside a body. The set of implementations is closed.
type Stmt interface {
	Pos() int
	stmt()
}

// Block is a brace-delimited statement list.
type Block struct {
	Node
	Stmts []Stmt
}

// If is an if expression in statement position.
type If struct {
	Node
	Cond string
	Then Stmt
	Else Stmt
}

// When is a when expression in statement position.
type When struct {
	Node
	Subject string
	Entries []WhenEntry
}

// WhenEntry is one branch. Else entries have no conditions.
type WhenEntry struct {
	Conds []string
	Else  bool
	Body  Stmt
}

// For is a for-in loop.
type For struct {
	Node
	Variable string
	Iterable string
	Body     Stmt
}

// While is a while loop.
type While struct {
	Node
	Cond string
	Body Stmt
}

// DoWhile is a do-while loop.
type DoWhile struct {
	Node
	Cond string
	Body Stmt
}

// Jump is a return, throw, break or continue expression.
type Jump struct {
	Node
	Keyword string
	Label   string
	Expr    string
}

// Try is a try expression in statement position.
type Try struct {
	Node
	Body    *Block
	Catches []Catch
	Finally *Block
}

// Catch is one catch block.
type Catch struct {
	Type string
	Name string
	Body *Block
}

// LocalDecl is a class or object declared in a body.
type LocalDecl struct {
	Node
	Decl Decl
}

// Comment is a comment among statements, with its delimiters.
type Comment struct {
	Node
	Text string
}

// Opaque is a statement that produces no structure of its own.
type Opaque struct {
	Node
	Kind string
}

// UnknownStmt is a statement kind the model does not cover.
type UnknownStmt struct {
	Node
	Kind string
}

func (*Block) stmt()       {}
func (*If) stmt()          {}
func (*When) stmt()        {}
func (*For) stmt()         {}
func (*While) stmt()       {}
func (*DoWhile) stmt()     {}
func (*Jump) stmt()        {}
func (*Try) stmt()         {}
func (*LocalDecl) stmt()   {}
func (*Comment) stmt()     {}
func (*Opaque) stmt()      {}
func (*UnknownStmt) stmt() {}
