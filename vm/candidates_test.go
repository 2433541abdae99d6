package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		asset string
		want  []string
	}{
		{
			name:  "empty base",
			asset: "orus.wasm",
			want:  []string{"orus.wasm", "/orus.wasm"},
		},
		{
			name:  "url page",
			base:  "https://play.example.com/app/index.html",
			asset: "orus.wasm",
			want: []string{
				"https://play.example.com/app/index.html/orus.wasm",
				"https://play.example.com/app/orus.wasm",
				"https://play.example.com/orus.wasm",
			},
		},
		{
			name:  "url directory",
			base:  "https://play.example.com/app/",
			asset: "/orus.wasm",
			want: []string{
				"https://play.example.com/app/orus.wasm",
				"https://play.example.com/orus.wasm",
			},
		},
		{
			name:  "url root",
			base:  "https://play.example.com",
			asset: "orus.wasm",
			want:  []string{"https://play.example.com/orus.wasm"},
		},
		{
			name:  "local directory",
			base:  "web/",
			asset: "orus.wasm",
			want:  []string{"web/orus.wasm", "/orus.wasm"},
		},
		{
			name:  "local file",
			base:  "web/index.html",
			asset: "orus.wasm",
			want:  []string{"web/index.html/orus.wasm", "web/orus.wasm", "/orus.wasm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.base, tt.asset))
		})
	}
}

func TestCandidates_EmptyAsset(t *testing.T) {
	assert.Nil(t, Candidates("https://example.com/", ""))
}
