package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/lsp"
)

var (
	lspPragma     string
	lspPragmaFrag string
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start a Language Server Protocol server over stdio",
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().StringVar(&lspPragma, "pragma", "", "factory function for elements (default React.createElement)")
	lspCmd.Flags().StringVar(&lspPragmaFrag, "pragma-frag", "", "factory argument for fragments (default React.Fragment)")
}

func runLSP(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := lsp.New(&jsxc.Options{
		Pragma:     lspPragma,
		PragmaFrag: lspPragmaFrag,
	}, logger)
	return server.Run()
}
