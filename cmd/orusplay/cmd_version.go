package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay"
)

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	var withRuntime bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the orusplay version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "orusplay %s\n", orusplay.VersionTag())
			if !withRuntime {
				return nil
			}

			loader := newLoader(cfg.Runtime)
			defer func() { _ = loader.Close(context.Background()) }()
			if err := loadRuntime(cmd.Context(), loader, cfg.Runtime.LoadTimeout); err != nil {
				return err
			}
			fmt.Fprintf(out, "runtime %s %s\n", loader.Version(), mutedFormat("("+loader.Source()+")"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withRuntime, "runtime", false, "also load the runtime and print its version")
	return cmd
}
