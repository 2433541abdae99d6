package buffer

import (
	"regexp"
	"strings"
)

// tagPattern matches a complete tag span only. A lone '<' as in "a<b" is kept.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Clean turns host-supplied text into plain buffer text: complete <...> spans
// are removed, the common entities are decoded and line breaks become '\n'.
//
// Entities are decoded after tags are stripped, so "&lt;b&gt;" survives as the
// literal "<b>".
func Clean(value string) string {
	if value == "" {
		return ""
	}
	s := value
	if strings.ContainsRune(s, '<') {
		s = tagPattern.ReplaceAllString(s, "")
	}
	if strings.ContainsRune(s, '&') {
		s = entityReplacer.Replace(s)
	}
	if strings.ContainsRune(s, '\r') {
		s = newlineReplacer.Replace(s)
	}
	return s
}
