package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay/internal/logger"
	"github.com/iw2rmb/orusplay/playground"
)

var (
	errorFormat = color.New(color.FgHiRed).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
	goodFormat  = color.New(color.FgGreen).SprintFunc()
	boldFormat  = color.New(color.FgHiWhite, color.Bold).SprintFunc()
)

// newRunCmd creates the run subcommand.
func newRunCmd() *cobra.Command {
	var (
		example string
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run an Orus program and print its output",
		Long: `Run an Orus program with the WebAssembly runtime and print what it prints.

The program is read from file, from standard input when file is "-" or
missing, or from a bundled example with --example. The exit status is 1
when the run fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, code, err := readProgram(args, example, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			loader := newLoader(cfg.Runtime)
			defer func() { _ = loader.Close(context.Background()) }()
			if err := loadRuntime(ctx, loader, cfg.Runtime.LoadTimeout); err != nil {
				return err
			}

			runner := playground.NewRunner(timedExecutor{loader: loader, timeout: cfg.Runtime.RunTimeout}, logger.L())
			res, _ := runner.Run(ctx, code)
			printResult(cmd.OutOrStdout(), res)
			if !quiet {
				printSummary(cmd.ErrOrStderr(), name, code, res)
			}
			if res.Failed() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&example, "example", "e", "", "run a bundled example by title")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "omit the summary line")
	return cmd
}

// printResult writes the run output, marking lines that report errors.
func printResult(w io.Writer, res playground.Result) {
	for _, line := range strings.Split(res.Output, "\n") {
		if playground.IsErrorLine(line) {
			line = errorFormat(line)
		}
		fmt.Fprintln(w, line)
	}
}

func printSummary(w io.Writer, name, code string, res playground.Result) {
	status := goodFormat("ok")
	if res.Failed() || res.ErrorCount > 0 {
		status = errorFormat(humanize.Comma(int64(res.ErrorCount)) + " " + plural(res.ErrorCount, "error", "errors"))
	}
	fmt.Fprintf(w, "%s %s %s\n",
		boldFormat(name),
		status,
		mutedFormat(fmt.Sprintf("(%s chars, %s output, %s, %s)",
			humanize.Comma(int64(utf8.RuneCountInString(code))),
			humanize.Bytes(uint64(len(res.Output))),
			res.Duration.Round(time.Millisecond),
			res.Source,
		)),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
