package jsxc

import "github.com/jsx-go/jsxc/errutil"

// CompileError is the single error type every Compile failure returns
// It is a type alias for errutil.CompileError so the lexer,
// parser, and generator packages can construct it without importing
// the root package.
type CompileError = errutil.CompileError

// Error kinds, re-exported from errutil for callers of this package.
const (
	LexerRuntime     = errutil.LexerRuntime
	LexerSyntax      = errutil.LexerSyntax
	ParserMismatch   = errutil.ParserMismatch
	ParserUnbalanced = errutil.ParserUnbalanced
	ParserOrder      = errutil.ParserOrder
	CodegenUnhandled = errutil.CodegenUnhandled
)
