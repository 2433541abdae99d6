package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay/editor"
	"github.com/iw2rmb/orusplay/playground"
	"github.com/iw2rmb/orusplay/syntax"
)

// newExamplesCmd creates the examples subcommand.
func newExamplesCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "examples [title]",
		Short: "List the bundled examples or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, ex := range playground.Examples() {
					fmt.Fprintf(out, "%s  %s\n", boldFormat(ex.Title), mutedFormat(ex.Description))
				}
				return nil
			}

			ex, ok := playground.Example(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", playground.ErrNoSuchExample, args[0])
			}
			if plain {
				fmt.Fprintln(out, ex.Code)
				return nil
			}
			fmt.Fprintln(out, renderANSI(syntax.Tokenize(syntax.Orus{}, ex.Code), editor.DefaultStyle(cfg.Editor.Dark), false))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the example without colours")
	return cmd
}
