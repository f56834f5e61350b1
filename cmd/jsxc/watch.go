package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/internal/cache"
	"github.com/jsx-go/jsxc/internal/watch"
)

var (
	watchPragma      string
	watchPragmaFrag  string
	watchOutDir      string
	watchDebounceMs  int
	watchNoUseStrict bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and recompile .jsx/.js files as they change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPragma, "pragma", "", "factory function for elements (default React.createElement)")
	watchCmd.Flags().StringVar(&watchPragmaFrag, "pragma-frag", "", "factory argument for fragments (default React.Fragment)")
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "write compiled files here instead of alongside the source")
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce", int(watch.DefaultDebounce/time.Millisecond), "debounce window in milliseconds")
	watchCmd.Flags().BoolVar(&watchNoUseStrict, "no-use-strict", false, `omit the leading "use strict"; prefix`)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	c, err := cache.New(cache.DefaultSize)
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}

	w, err := watch.New(c, watch.Options{
		Debounce: time.Duration(watchDebounceMs) * time.Millisecond,
		OutDir:   watchOutDir,
		Compile: &jsxc.Options{
			Pragma:           watchPragma,
			PragmaFrag:       watchPragmaFrag,
			DisableUseStrict: watchNoUseStrict,
		},
	}, logger)
	if err != nil {
		return err
	}

	if err := w.Start(dir); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}
