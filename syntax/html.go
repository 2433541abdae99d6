package syntax

import (
	"sort"
	"strings"
	"unicode/utf8"

	strip "github.com/grokify/html-strip-tags-go"
)

// Palette maps categories to the playground colours.
var Palette = map[Category]string{
	Comment: "#6a9955",
	String:  "#ce9178",
	Number:  "#b5cea8",
	Keyword: "#c586c0",
	Type:    "#4ec9b0",
	Builtin: "#4fc1ff",
	Call:    "#dcdcaa",
}

// DefaultPlaceholder is shown for an empty buffer.
const DefaultPlaceholder = "// Write your Orus code here..."

type RenderOptions struct {
	// ClassPrefix prefixes the category name in span classes. Default "tok-".
	ClassPrefix string
	// Inline emits style="color: …" from Palette instead of classes.
	Inline bool
	// Placeholder is rendered as a comment when the text is empty.
	Placeholder string
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes & < > " and '.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// RenderHTML renders tokenized lines as escaped text with each token wrapped in
// a span. Lines are joined with '\n'. Without a placeholder, stripping the
// tags from the result yields exactly EscapeHTML of the joined text.
func RenderHTML(lines []Line, opts RenderOptions) string {
	if isEmpty(lines) {
		if opts.Placeholder == "" {
			return ""
		}
		return openSpan(Comment, opts) + EscapeHTML(opts.Placeholder) + "</span>"
	}

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		runes := []rune(l.Text)
		col := 0
		for _, tok := range Normalize(l.Tokens, len(runes)) {
			sb.WriteString(EscapeHTML(string(runes[col:tok.Start])))
			sb.WriteString(openSpan(tok.Category, opts))
			sb.WriteString(EscapeHTML(string(runes[tok.Start:tok.End])))
			sb.WriteString("</span>")
			col = tok.End
		}
		sb.WriteString(EscapeHTML(string(runes[col:])))
	}
	return sb.String()
}

// HighlightHTML tokenizes text with h and renders it.
func HighlightHTML(h Highlighter, text string, opts RenderOptions) string {
	return RenderHTML(Tokenize(h, text), opts)
}

func isEmpty(lines []Line) bool {
	return len(lines) == 0 || (len(lines) == 1 && lines[0].Text == "")
}

func openSpan(c Category, opts RenderOptions) string {
	if opts.Inline {
		return `<span style="color: ` + Palette[c] + `">`
	}
	prefix := opts.ClassPrefix
	if prefix == "" {
		prefix = "tok-"
	}
	return `<span class="` + prefix + c.String() + `">`
}

// StripMarkup removes tags from rendered markup, leaving entities intact.
func StripMarkup(markup string) string {
	if !strings.ContainsRune(markup, '<') {
		return markup
	}
	return strip.StripTags(markup)
}

// maxEntityLen bounds the scan for the ';' closing an entity.
const maxEntityLen = 10

// MarkLogical wraps the logical characters of markup covered by ranges in
// open/close. Logical positions count characters of the underlying text: tags
// are skipped and an entity counts as one character. A mark that spans a tag is
// closed before it and reopened after it, so the result stays well-formed.
func MarkLogical(markup string, ranges []Range, open, close string) string {
	ranges = normalizeRanges(ranges)
	if len(ranges) == 0 || markup == "" {
		return markup
	}

	ri := 0
	covered := func(pos int) bool {
		for ri < len(ranges) && ranges[ri].End <= pos {
			ri++
		}
		return ri < len(ranges) && ranges[ri].Start <= pos
	}

	var sb strings.Builder
	sb.Grow(len(markup) + len(ranges)*(len(open)+len(close)))
	pos := 0
	marked := false
	for i := 0; i < len(markup); {
		c := markup[i]
		if c == '<' {
			if j := strings.IndexByte(markup[i:], '>'); j >= 0 {
				if marked && !covered(pos) {
					sb.WriteString(close)
					marked = false
				}
				if marked {
					sb.WriteString(close)
				}
				sb.WriteString(markup[i : i+j+1])
				if marked {
					sb.WriteString(open)
				}
				i += j + 1
				continue
			}
		}

		n := 1
		if c == '&' {
			if j := strings.IndexByte(markup[i:], ';'); j > 0 && j <= maxEntityLen {
				n = j + 1
			}
		} else {
			_, n = utf8.DecodeRuneInString(markup[i:])
		}

		want := covered(pos)
		if want && !marked {
			sb.WriteString(open)
			marked = true
		} else if !want && marked {
			sb.WriteString(close)
			marked = false
		}
		sb.WriteString(markup[i : i+n])
		i += n
		pos++
	}
	if marked {
		sb.WriteString(close)
	}
	return sb.String()
}

func normalizeRanges(ranges []Range) []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.End < r.Start {
			r.Start, r.End = r.End, r.Start
		}
		if r.Start == r.End {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
