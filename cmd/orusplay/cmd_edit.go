package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay/buffer"
	"github.com/iw2rmb/orusplay/internal/logger"
	"github.com/iw2rmb/orusplay/playground"
)

// newEditCmd creates the edit subcommand.
func newEditCmd() *cobra.Command {
	var example string
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive playground",
		Long: `Open the playground: an editor with file tabs, an output pane and the Orus
runtime. A file argument seeds the main tab; --example seeds it with a bundled
example.

  ctrl+r run       ctrl+k clear output   ctrl+s save main tab
  ctrl+n new tab   ctrl+t next tab       ctrl+w close tab
  ctrl+g example   ctrl+o reset          ctrl+p copy share link
  ctrl+q quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := playground.DefaultCode
			switch {
			case example != "":
				ex, ok := playground.Example(example)
				if !ok {
					return playground.ErrNoSuchExample
				}
				code = ex.Code
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil && !os.IsNotExist(err) {
					return err
				}
				code = buffer.Clean(string(data))
				logger.Info("editing file", "path", filepath.Clean(args[0]), "exists", err == nil)
			}

			loader := newLoader(cfg.Runtime)
			defer func() { _ = loader.Close(context.Background()) }()

			a := newApp(appConfig{
				Session:   playground.NewSession(code),
				Runner:    playground.NewRunner(timedExecutor{loader: loader, timeout: cfg.Runtime.RunTimeout}, logger.L()),
				Load:      func(ctx context.Context) error { return loadRuntime(ctx, loader, cfg.Runtime.LoadTimeout) },
				Version:   loader.Version,
				Editor:    cfg.Editor,
				ShareBase: cfg.Playground.ShareBaseURL,
				SaveTo:    firstArg(args),
			})
			p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&example, "example", "e", "", "start from a bundled example")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
