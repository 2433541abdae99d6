package playground

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL builds a link that reopens the playground with code loaded. Any
// query or fragment already on base is replaced.
func ShareURL(base, code string) (string, error) {
	if err := ValidateCode(code); err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse share base %q: %w", base, err)
	}
	u.RawQuery = "code=" + escapeComponent(code)
	u.Fragment = ""
	return u.String(), nil
}

// escapeComponent escapes s for a query value, encoding spaces as %20 so the
// link reads the same as one produced by a browser.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
