package jsxc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsx-go/jsxc/ast"
	"github.com/jsx-go/jsxc/debugval"
	"github.com/jsx-go/jsxc/lexer"
	"github.com/jsx-go/jsxc/parser"
	"github.com/jsx-go/jsxc/stripper"
)

var propertyCorpus = []string{
	`const x = 1;`,
	`const x = <div id="a">hi</div>;`,
	`const a = <div data-x="1" {...rest}>&amp;</div>;`,
	`<ul>{items.map(i => <li key={i}>{i}</li>)}</ul>`,
	`const a = cond && <X/>;`,
	`// leading comment\nconst x = a<b?c:d;`,
	"\"use strict\";\nconst x = <br/>;",
}

// Invariant 1: stripping never changes a source's length.
func TestInvariantStripPreservesLength(t *testing.T) {
	for _, src := range propertyCorpus {
		require.Equal(t, len(src), len(stripper.Strip(src)), "source: %q", src)
	}
}

// Invariant 2: Compile(s) contains "use strict" iff s contains it or
// the strict directive hasn't been disabled.
func TestInvariantUseStrictPresence(t *testing.T) {
	for _, src := range propertyCorpus {
		for _, disableUseStrict := range []bool{false, true} {
			out, err := Compile(src, &Options{DisableUseStrict: disableUseStrict})
			require.NoError(t, err, "source: %q", src)

			want := !disableUseStrict || strings.Contains(src, `"use strict"`) || strings.Contains(src, `'use strict'`)
			got := strings.Contains(out, `"use strict"`) || strings.Contains(out, `'use strict'`)
			require.Equal(t, want, got, "source: %q disableUseStrict=%v", src, disableUseStrict)
		}
	}
}

// Invariant 3: for well-formed input, E_START and E_END token counts match.
func TestInvariantStartEndTokenCountsMatch(t *testing.T) {
	for _, src := range propertyCorpus {
		stripped := stripper.Strip(src)
		toks, err := lexer.Tokenize(stripped, lexer.Limits{})
		require.NoError(t, err, "source: %q", src)

		starts, ends := 0, 0
		for _, tok := range toks {
			switch tok.Kind {
			case lexer.E_START:
				starts++
			case lexer.E_END:
				ends++
			}
		}
		require.Equal(t, starts, ends, "source: %q", src)
	}
}

// Invariant 4: input with no '<' in a non-string position passes
// through unchanged, modulo an optional strict-mode prefix.
func TestInvariantNoElementPassesThrough(t *testing.T) {
	inputs := []string{
		`const x = 1;`,
		`function f(a, b) { return a + b; }`,
		`const s = "a<b";`,
	}
	for _, src := range inputs {
		out, err := Compile(src, &Options{DisableUseStrict: true})
		require.NoError(t, err, "source: %q", src)
		require.Equal(t, src, out)

		out, err = Compile(src, nil)
		require.NoError(t, err, "source: %q", src)
		require.Equal(t, "\"use strict\";\n"+src, out)
	}
}

// Invariant 5: two sources that are the same modulo comments and
// whitespace produce structurally equal element trees.
func TestInvariantStructuralRoundTrip(t *testing.T) {
	a := `<div id="x">hi</div>`
	b := "<div  id=\"x\" >hi</div> // trailing comment\n"

	progA := mustParse(t, a)
	progB := mustParse(t, b)

	callsA := debugval.FromProgram(progA, "Fragment")
	callsB := debugval.FromProgram(progB, "Fragment")
	require.Len(t, callsA, 1)
	require.Len(t, callsB, 1)
	require.True(t, debugval.Equal(callsA[0], callsB[0]), "expected structurally equal trees")
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	stripped := stripper.Strip(src)
	toks, err := lexer.Tokenize(stripped, lexer.Limits{})
	require.NoError(t, err)
	prog, err := parser.Parse(toks, stripped)
	require.NoError(t, err)
	return prog
}
