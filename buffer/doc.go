// Package buffer implements the pure, rune-accurate document model of the editor.
//
// Coordinates are 0-based (Row, Col) in runes, and linear offsets count runes
// with '\n' as a single rune. Ranges are half-open selections: [Start, End).
package buffer
