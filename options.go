package jsxc

import "github.com/jsx-go/jsxc/generator"

// Options configures a single Compile call. The zero value
// compiles with the default React 16+ factory pragmas and a leading
// `"use strict";` directive.
type Options struct {
	// Pragma is the factory function invoked for every element,
	// including fragments (whose first argument is PragmaFrag). Default
	// "React.createElement".
	Pragma string

	// PragmaFrag is the identifier passed as an element's first argument
	// when the source element is a fragment. Default "React.Fragment".
	PragmaFrag string

	// DisableUseStrict opts out of the default `"use strict";\n` prefix.
	// Compile always skips the prefix if the generated text already
	// contains a strict-mode directive, regardless of this field.
	DisableUseStrict bool

	// MaxRecursiveCalls bounds lexer recursion depth: every element
	// counts, including elements nested inside attribute/child
	// expressions. Zero uses the lexer's default.
	MaxRecursiveCalls int

	// EntityDecoder decodes HTML entities in child text. Nil uses
	// generator.DefaultEntityDecoder.
	EntityDecoder generator.EntityDecoder
}
