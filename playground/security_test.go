package playground

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "plain", code: "fn main() {\n    print(\"hi\")\n}"},
		{name: "at limit", code: strings.Repeat("\u00e9", MaxCodeLength)},
		{name: "too long", code: strings.Repeat("a", MaxCodeLength+1), want: ErrCodeTooLong},
		{name: "script", code: `print("<SCRIPT>")`, want: ErrSuspiciousCode},
		{name: "javascript", code: "JavaScript:alert(1)", want: ErrSuspiciousCode},
		{name: "data url", code: "data:Text/HTML,x", want: ErrSuspiciousCode},
		{name: "vbscript", code: "vbscript:msgbox", want: ErrSuspiciousCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.code)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSanitizeURLParameter(t *testing.T) {
	got, err := SanitizeURLParameter("fn%20main()%20%7B%7D")
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}", got)

	got, err = SanitizeURLParameter("a+b")
	require.NoError(t, err)
	assert.Equal(t, "a+b", got)

	_, err = SanitizeURLParameter("%E0%A4%A")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = SanitizeURLParameter("%3Cscript%3E")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorIs(t, err, ErrSuspiciousCode)

	_, err = SanitizeURLParameter("")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCodeFromQuery(t *testing.T) {
	code, ok, err := CodeFromQuery("code=print(%22hi%22)&theme=dark")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `print("hi")`, code)

	_, ok, err = CodeFromQuery("theme=dark")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = CodeFromQuery("code=javascript%3Aalert(1)")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
