package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/debugval"
	"github.com/jsx-go/jsxc/errutil"
	"github.com/jsx-go/jsxc/lexer"
	"github.com/jsx-go/jsxc/parser"
	"github.com/jsx-go/jsxc/stripper"
)

var (
	compilePragma            string
	compilePragmaFrag        string
	compileNoUseStrict       bool
	compileMaxRecursiveCalls int
	compileOutput            string
	compileDumpAST           bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a single JSX source file (or stdin) to JavaScript",
	Long: `compile reads JSX-flavored JavaScript from a file argument, or from
stdin when no file is given, and writes the compiled JavaScript to stdout
(or to the path given by -o).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&compilePragma, "pragma", "", "factory function for elements (default React.createElement)")
	compileCmd.Flags().StringVar(&compilePragmaFrag, "pragma-frag", "", "factory argument for fragments (default React.Fragment)")
	compileCmd.Flags().BoolVar(&compileNoUseStrict, "no-use-strict", false, `omit the leading "use strict"; prefix`)
	compileCmd.Flags().IntVar(&compileMaxRecursiveCalls, "max-recursive-calls", 1000, "bound on nested-element recursion depth")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write output to this path instead of stdout")
	compileCmd.Flags().BoolVar(&compileDumpAST, "ast", false, "print the parsed element tree instead of compiling")
}

func runCompile(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	opts := &jsxc.Options{
		Pragma:            compilePragma,
		PragmaFrag:        compilePragmaFrag,
		DisableUseStrict:  compileNoUseStrict,
		MaxRecursiveCalls: compileMaxRecursiveCalls,
	}

	if compileDumpAST {
		return dumpAST(cmd.OutOrStdout(), src, opts)
	}

	output, err := jsxc.Compile(src, opts)
	if err != nil {
		printCompileError(os.Stderr, err)
		return err
	}

	if compileOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}
	return os.WriteFile(compileOutput, []byte(output), 0o644)
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// dumpAST runs the first three pipeline stages and prints the resulting
// tree via debugval instead of generating JavaScript.
func dumpAST(w io.Writer, src string, opts *jsxc.Options) error {
	stripped := stripper.Strip(src)
	toks, err := lexer.Tokenize(stripped, lexer.Limits{MaxRecursiveCalls: opts.MaxRecursiveCalls})
	if err != nil {
		printCompileError(os.Stderr, err)
		return err
	}
	prog, err := parser.Parse(toks, stripped)
	if err != nil {
		printCompileError(os.Stderr, err)
		return err
	}

	pragmaFrag := opts.PragmaFrag
	if pragmaFrag == "" {
		pragmaFrag = "React.Fragment"
	}
	for _, node := range prog.Body {
		if node.Element == nil {
			continue
		}
		call := debugval.FromElement(node.Element, pragmaFrag)
		fmt.Fprint(w, call.String())
	}
	return nil
}

// printCompileError writes err to w, coloring it red when w is a
// terminal (mattn/go-isatty), matching the way pack tooling gates ANSI
// output on isatty.IsTerminal so piped/CI output stays plain.
func printCompileError(w *os.File, err error) {
	msg := err.Error()
	if _, ok := err.(*errutil.CompileError); ok && isatty.IsTerminal(w.Fd()) {
		fmt.Fprintf(w, "\x1b[31m%s\x1b[0m\n", msg)
		return
	}
	fmt.Fprintln(w, msg)
}
