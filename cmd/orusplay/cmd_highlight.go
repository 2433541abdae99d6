package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/orusplay/editor"
	"github.com/iw2rmb/orusplay/syntax"
)

// newHighlightCmd creates the highlight subcommand.
func newHighlightCmd() *cobra.Command {
	var (
		example  string
		lang     string
		html     bool
		inline   bool
		lineNums bool
	)
	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print syntax highlighted source",
		Long: `Print a program with syntax highlighting, as ANSI colours for the terminal
or as HTML spans with --html.

The language comes from --lang, then the file extension, then the configured
editor language.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, code, err := readProgram(args, example, cmd.InOrStdin())
			if err != nil {
				return err
			}
			h := pickHighlighter(lang, args, cfg.Editor.Language)

			out := cmd.OutOrStdout()
			if html {
				fmt.Fprintln(out, syntax.HighlightHTML(h, code, syntax.RenderOptions{
					Inline:      inline,
					Placeholder: syntax.DefaultPlaceholder,
				}))
				return nil
			}
			fmt.Fprintln(out, renderANSI(syntax.Tokenize(h, code), editor.DefaultStyle(cfg.Editor.Dark), lineNums))
			return nil
		},
	}
	cmd.Flags().StringVarP(&example, "example", "e", "", "highlight a bundled example by title")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language tag (orus or any chroma lexer name)")
	cmd.Flags().BoolVar(&html, "html", false, "emit HTML instead of ANSI")
	cmd.Flags().BoolVar(&inline, "inline", false, "with --html, use inline colours instead of classes")
	cmd.Flags().BoolVarP(&lineNums, "line-numbers", "n", false, "prefix each line with its number")
	return cmd
}

func pickHighlighter(lang string, args []string, fallback string) syntax.Highlighter {
	switch {
	case lang != "":
		return syntax.ForLanguage(lang)
	case len(args) > 0 && args[0] != "-":
		return syntax.ForFile(args[0])
	default:
		return syntax.ForLanguage(fallback)
	}
}

// renderANSI styles tokenized lines with the editor's colours.
func renderANSI(lines []syntax.Line, st editor.Style, lineNums bool) string {
	width := editor.LineNumberWidth(len(lines)) - 1
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		var sb strings.Builder
		if lineNums {
			sb.WriteString(st.LineNum.Render(fmt.Sprintf("%*d", width, i+1)))
			sb.WriteByte(' ')
		}
		runes := []rune(line.Text)
		col := 0
		for _, tok := range line.Tokens {
			if tok.Start > col {
				sb.WriteString(st.Text.Render(string(runes[col:tok.Start])))
			}
			sb.WriteString(st.Token(tok.Category).Render(string(runes[tok.Start:tok.End])))
			col = tok.End
		}
		if col < len(runes) {
			sb.WriteString(st.Text.Render(string(runes[col:])))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}
