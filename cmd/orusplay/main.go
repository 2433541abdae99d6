package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay"
	"github.com/iw2rmb/orusplay/internal/config"
	"github.com/iw2rmb/orusplay/internal/logger"
)

var (
	// Flags
	configPath string
	debug      bool

	cfg *config.Config
)

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, color.New(color.FgHiRed).Sprint("Error: ")+err.Error())
		}
		logger.Close()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orusplay",
		Short: "Terminal playground for the Orus language",
		Long: `orusplay edits, highlights, runs and shares Orus programs from the terminal.

  orusplay edit [file]        Open the interactive playground
  orusplay run [file]         Run a program and print its output
  orusplay highlight [file]   Print syntax highlighted source (ANSI or HTML)
  orusplay examples           List the bundled examples
  orusplay share [file]       Print a shareable playground link`,
		Version:       orusplay.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/orusplay/orusplay.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newEditCmd(),
		newRunCmd(),
		newHighlightCmd(),
		newExamplesCmd(),
		newShareCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration and starts the file logger.
func setup() error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Log.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	logger.Init(level, cfg.Log.Path)
	logger.Debug("orusplay starting", "version", orusplay.Version(), "config", configPath)
	return nil
}
