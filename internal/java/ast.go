package java

import "math"

// File is the syntax model of one Java compilation unit.
type File struct {
	Package string // "" when the unit has no package declaration
	Imports []Import
	Types   []Decl
}

// Import is a single import declaration.
type Import struct {
	Name     string
	Static   bool
	Wildcard bool
}

// Node carries the source position shared by every declaration and
// statement. Line is 1-based; zero means the position is unknown.
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

// Decl is a type or member declaration. The set of implementations is
// closed: Class, Record, Enum, Annotation, Field, Method and UnknownDecl.
type Decl interface {
	Pos() int
	decl()
}

// Class is a class or interface declaration.
type Class struct {
	Node
	Doc        string // raw comment preceding the declaration
	Interface  bool
	Modifiers  []string
	Name       string
	TypeParams []string
	Extends    []string
	Implements []string
	Members    []Decl
}

// Record is a record declaration.
type Record struct {
	Node
	Doc        string
	Modifiers  []string
	Name       string
	TypeParams []string
	Components []Param
	Implements []string
	Members    []Decl
}

// Enum is an enum declaration.
type Enum struct {
	Node
	Doc        string
	Modifiers  []string
	Name       string
	Implements []string
	Entries    []EnumEntry
	Members    []Decl
}

// EnumEntry is one enum constant.
type EnumEntry struct {
	Node
	Doc  string
	Name string
	Args []Arg
}

// ArgKind classifies an enum constant argument.
type ArgKind int

const (
	ArgComposite ArgKind = iota
	ArgNull
	ArgBoolean
	ArgChar
	ArgInteger
	ArgLong
	ArgDouble
	ArgString
	ArgTextBlock
)

var argKindNames = [...]string{
	ArgComposite: "composite",
	ArgNull:      "null",
	ArgBoolean:   "boolean",
	ArgChar:      "char",
	ArgInteger:   "integer",
	ArgLong:      "long",
	ArgDouble:    "double",
	ArgString:    "string",
	ArgTextBlock: "textblock",
}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "composite"
}

// Arg is an enum constant argument. Value is the literal's value without
// delimiters; composite expressions carry no value.
type Arg struct {
	Kind  ArgKind
	Value string
}

// Annotation is an annotation type declaration.
type Annotation struct {
	Node
	Doc       string
	Modifiers []string
	Name      string
	Elements  []AnnotationElement
	Members   []Decl
}

// AnnotationElement is a method-like member of an annotation type.
type AnnotationElement struct {
	Node
	Doc       string
	Modifiers []string
	Type      string
	Name      string
	Default   *string
}

// Field is a field (or interface constant) declaration with one or more
// declarators.
type Field struct {
	Node
	Doc       string
	Modifiers []string
	Type      string
	Vars      []Var
}

// Var is one field declarator.
type Var struct {
	Name  string
	Value *string
}

// MethodKind distinguishes methods, constructors and initializer blocks.
type MethodKind int

const (
	MethodNormal MethodKind = iota
	MethodConstructor
	MethodInitializer
)

func (k MethodKind) String() string {
	switch k {
	case MethodConstructor:
		return "constructor"
	case MethodInitializer:
		return "initializer"
	}
	return "normal"
}

// Method is a method, constructor or initializer block.
type Method struct {
	Node
	Kind       MethodKind
	Doc        string
	Modifiers  []string
	TypeParams []string
	Result     string // "" for void, constructors and initializers
	Name       string
	Receiver   *Param
	Params     []Param
	Throws     []string
	Definition string
	Body       *Block // nil for abstract and interface methods
}

// Param is a formal parameter or record component.
type Param struct {
	Modifiers []string
	Type      string
	Name      string
}

// UnknownDecl is a declaration kind the model does not cover.
type UnknownDecl struct {
	Node
	Kind string
}

func (*Class) decl()       {}
func (*Record) decl()      {}
func (*Enum) decl()        {}
func (*Annotation) decl()  {}
func (*Field) decl()       {}
func (*Method) decl()      {}
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

// If is an if statement; Else is nil, another *If, or any other statement.
type If struct {
	Node
	Cond string
	Then Stmt
	Else Stmt
}

// Switch is a switch statement or statement-position switch expression.
type Switch struct {
	Node
	Selector string
	Groups   []SwitchGroup
}

// SwitchGroup is a run of labels followed by its statements. A group with
// no statements falls through to the next one.
type SwitchGroup struct {
	Labels  []string
	Default bool
	Body    []Stmt
}

// For is a basic for loop. Cond is "" when omitted.
type For struct {
	Node
	Init   []string
	Cond   string
	Update []string
	Body   Stmt
}

// ForEach is an enhanced for loop.
type ForEach struct {
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

// Do is a do-while loop.
type Do struct {
	Node
	Cond string
	Body Stmt
}

// Break is a break statement with an optional label.
type Break struct {
	Node
	Label string
}

// Continue is a continue statement with an optional label.
type Continue struct {
	Node
	Label string
}

// Return is a return statement; Expr is "" for a bare return.
type Return struct {
	Node
	Expr string
}

// Throw is a throw statement.
type Throw struct {
	Node
	Expr string
}

// Try is a try statement, with or without resources.
type Try struct {
	Node
	Resources []string
	Body      *Block
	Catches   []Catch
	Finally   *Block
}

// Catch is one catch clause. Type joins union alternatives with "|".
type Catch struct {
	Type string
	Name string
	Body *Block
}

// Synchronized is a synchronized block.
type Synchronized struct {
	Node
	Lock string
	Body *Block
}

// Labeled is a labeled statement.
type Labeled struct {
	Node
	Label string
	Body  Stmt
}

// LocalDecl is a class, record, enum or interface declared in a body.
type LocalDecl struct {
	Node
	Decl Decl
}

// Comment is a comment found among statements, with its delimiters.
type Comment struct {
	Node
	Text string
}

// Opaque is a statement that produces no structure of its own: expression
// and local variable statements, assertions, yields and explicit
// constructor invocations.
type Opaque struct {
	Node
	Kind string
}

// UnknownStmt is a statement kind the model does not cover.
type UnknownStmt struct {
	Node
	Kind string
}

func (*Block) stmt()        {}
func (*If) stmt()           {}
func (*Switch) stmt()       {}
func (*For) stmt()          {}
func (*ForEach) stmt()      {}
func (*While) stmt()        {}
func (*Do) stmt()           {}
func (*Break) stmt()        {}
func (*Continue) stmt()     {}
func (*Return) stmt()       {}
func (*Throw) stmt()        {}
func (*Try) stmt()          {}
func (*Synchronized) stmt() {}
func (*Labeled) stmt()      {}
func (*LocalDecl) stmt()    {}
func (*Comment) stmt()      {}
func (*Opaque) stmt()       {}
func (*UnknownStmt) stmt()  {}
