// Package ast defines the tree the parser builds from a lexer.Token
// stream and the generator walks to produce JavaScript.
package ast

// Program is the root of a compiled source file: an ordered sequence of
// raw JavaScript chunks and JSX elements, exactly as they appeared in
// the original source.
type Program struct {
	Body []Node
}

// Node is either a JsChunk or a CreateElement; exactly one field is set.
type Node struct {
	JS      *JsChunk
	Element *CreateElement
}

// JsChunk is a run of JavaScript text between, before, or after JSX
// elements. Pos is the byte offset just past its last character, for
// error messages.
type JsChunk struct {
	Text string
	Pos  int
}

// CreateElement is a JSX element or fragment. Name is empty for a
// fragment. IsClass reports whether Name should be emitted as a bare
// identifier (a user-defined component) rather than a quoted string (a
// host element); it begins with an uppercase letter or
// contains a '.'.
type CreateElement struct {
	Name     string
	IsClass  bool
	Props    []Prop
	Children []Child
	Depth    int
	Pos      int
}

// Prop is a single JSX attribute. Exactly one of IsSpread, Literal,
// Boolean, or a non-empty Value describes its form.
type Prop struct {
	// Name is the attribute name, or — when IsSpread is true — the full
	// "{...expr}" text, stored verbatim.
	Name string

	IsSpread bool

	// Literal holds a JSON-encoded string value ("x" attribute form).
	Literal *string

	// Boolean is true for a bare attribute with no "=" at all.
	Boolean bool

	// Value holds a JS-expression form, possibly interleaved with one
	// or more nested elements (prop={<Child/>}, prop={a ? <X/> : <Y/>}).
	// A single element with no surrounding JS is still one entry with
	// Kind == ChildElement.
	Value []Child

	Pos int
}

// ChildKind identifies what a Child node holds.
type ChildKind int

const (
	ChildText ChildKind = iota
	ChildWhitespace
	ChildJS
	ChildElement
)

// Child is one entry of an element's children, or one part of a
// multi-part prop value. Exactly one of Text or Element is meaningful,
// selected by Kind.
type Child struct {
	Kind ChildKind
	// Text holds the literal text run (ChildText/ChildWhitespace) or the
	// raw JS expression text (ChildJS), never including braces.
	Text    string
	Element *CreateElement
	Pos     int

	// Group identifies which original source construct this Child came
	// from. Every part produced by splitting a single "{...}" expression
	// around one or more nested elements shares a Group; every other
	// child gets its own unique Group. The generator concatenates
	// same-Group parts directly (they are fragments of one JS
	// expression) and applies the comma/concatenation rules only
	// between children from different Groups.
	Group int
}
