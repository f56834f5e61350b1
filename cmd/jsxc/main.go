// jsxc compiles JSX-flavored JavaScript source into plain JavaScript.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build info, overwritten at release time via -ldflags, the way
// germtb/gox's cmd/gox/main.go stamps its own version/commit/date vars.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jsxc",
	Short: "Compile JSX-flavored JavaScript to plain JavaScript",
	Long: `jsxc is a standalone JSX-to-JavaScript compiler.

It rewrites JSX element expressions embedded in ordinary JavaScript into
calls to a configurable factory function (the pragma), typically
React.createElement.`,
}

func main() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jsxc: %v\n", err)
		os.Exit(1)
	}
}
