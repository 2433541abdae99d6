package playground

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// CodeExample is one entry of the built-in example catalog.
type CodeExample struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Code        string `yaml:"code"`
}

//go:embed examples.yaml
var examplesYAML []byte

var (
	examplesOnce sync.Once
	examples     []CodeExample
	examplesErr  error
)

// ParseExamples decodes a YAML list of examples.
func ParseExamples(data []byte) ([]CodeExample, error) {
	var out []CodeExample
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse examples: %w", err)
	}
	for i, ex := range out {
		if ex.Title == "" {
			return nil, fmt.Errorf("parse examples: entry %d has no title", i)
		}
	}
	return out, nil
}

// Examples returns a copy of the built-in catalog in display order.
func Examples() []CodeExample {
	examplesOnce.Do(func() {
		examples, examplesErr = ParseExamples(examplesYAML)
	})
	if examplesErr != nil {
		panic(examplesErr)
	}
	return append([]CodeExample(nil), examples...)
}

// Example looks up a built-in example by title.
func Example(title string) (CodeExample, bool) {
	for _, ex := range Examples() {
		if ex.Title == title {
			return ex, true
		}
	}
	return CodeExample{}, false
}
