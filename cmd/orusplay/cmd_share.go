package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay/editor"
	"github.com/iw2rmb/orusplay/internal/logger"
	"github.com/iw2rmb/orusplay/playground"
)

// newShareCmd creates the share subcommand.
func newShareCmd() *cobra.Command {
	var (
		example string
		copyURL bool
		decode  string
	)
	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Print a playground link carrying a program",
		Long: `Print a link to the web playground with the program in its "code" query
parameter. With --decode the program is extracted from such a link instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if decode != "" {
				code, err := decodeShareURL(decode)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, code)
				return nil
			}

			_, code, err := readProgram(args, example, cmd.InOrStdin())
			if err != nil {
				return err
			}
			link, err := playground.ShareURL(cfg.Playground.ShareBaseURL, code)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, link)

			if copyURL {
				if !editor.SystemClipboardAvailable() {
					return errors.New("no system clipboard available")
				}
				if err := (editor.SystemClipboard{}).WriteText(link); err != nil {
					return fmt.Errorf("copy link: %w", err)
				}
				logger.Debug("share link copied", "length", len(link))
				fmt.Fprintln(cmd.ErrOrStderr(), mutedFormat("copied to clipboard"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&example, "example", "e", "", "share a bundled example by title")
	cmd.Flags().BoolVarP(&copyURL, "copy", "c", false, "copy the link to the system clipboard")
	cmd.Flags().StringVar(&decode, "decode", "", "print the program carried by a playground link")
	return cmd
}

// decodeShareURL returns the validated program in link's code parameter.
func decodeShareURL(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}
	code, ok, err := playground.CodeFromQuery(u.RawQuery)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("link has no code parameter")
	}
	return code, nil
}
