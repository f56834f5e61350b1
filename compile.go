// Package jsxc compiles JSX-flavored JavaScript source into plain
// JavaScript. It orchestrates four pure pipeline stages — comment
// stripping, lexing, parsing, and code generation — none of which
// perform I/O or retain state between calls.
package jsxc

import (
	"regexp"
	"strings"

	"github.com/jsx-go/jsxc/generator"
	"github.com/jsx-go/jsxc/lexer"
	"github.com/jsx-go/jsxc/parser"
	"github.com/jsx-go/jsxc/stripper"
)

var (
	jsxDirectiveRe     = regexp.MustCompile(`@jsx\s+([A-Za-z_$][A-Za-z0-9_$.]*)`)
	jsxFragDirectiveRe = regexp.MustCompile(`@jsxFrag\s+([A-Za-z_$][A-Za-z0-9_$.]*)`)
)

// Compile translates input into JavaScript. opts may be nil.
func Compile(input string, opts *Options) (string, error) {
	stripped := stripper.Strip(input)

	pragma, pragmaFrag := resolvePragmas(opts, input, stripped)

	toks, err := lexer.Tokenize(stripped, lexer.Limits{MaxRecursiveCalls: maxRecursiveCalls(opts)})
	if err != nil {
		return "", err
	}

	prog, err := parser.Parse(toks, stripped)
	if err != nil {
		return "", err
	}

	genOpts := &generator.Options{
		Pragma:           pragma,
		PragmaFrag:       pragmaFrag,
		DisableUseStrict: opts != nil && opts.DisableUseStrict,
		EntityDecoder:    entityDecoder(opts),
	}
	return generator.Generate(prog, genOpts)
}

// resolvePragmas applies the per-source directive override: a
// `@jsx`/`@jsxFrag` comment in input takes precedence over an explicit
// Options field, which in turn takes precedence over the factory
// defaults. Directives must appear inside a comment, so they are
// searched for only in the bytes stripper.Strip replaced.
func resolvePragmas(opts *Options, input, stripped string) (pragma, pragmaFrag string) {
	if opts != nil {
		pragma, pragmaFrag = opts.Pragma, opts.PragmaFrag
	}

	comments := commentOnlyText(input, stripped)
	if m := jsxDirectiveRe.FindStringSubmatch(comments); m != nil {
		pragma = m[1]
	}
	if m := jsxFragDirectiveRe.FindStringSubmatch(comments); m != nil {
		pragmaFrag = m[1]
	}
	return pragma, pragmaFrag
}

// commentOnlyText returns input with every byte the stripper did NOT
// touch replaced by a space, leaving only comment text (and newlines).
func commentOnlyText(input, stripped string) string {
	var sb strings.Builder
	sb.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if input[i] != stripped[i] {
			sb.WriteByte(input[i])
		} else if input[i] == '\n' {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func maxRecursiveCalls(opts *Options) int {
	if opts == nil {
		return 0
	}
	return opts.MaxRecursiveCalls
}

func entityDecoder(opts *Options) generator.EntityDecoder {
	if opts == nil {
		return nil
	}
	return opts.EntityDecoder
}
