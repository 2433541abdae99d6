package grapheme

import "testing"

func TestNextPrev_MultiRuneClusters(t *testing.T) {
	line := []rune("a" + "e\u0301" + "b")
	if len(line) != 4 {
		t.Fatalf("rune len=%d, want %d", len(line), 4)
	}

	if got := Next(line, 0); got != 1 {
		t.Fatalf("Next(0)=%d, want %d", got, 1)
	}
	if got := Next(line, 1); got != 3 {
		t.Fatalf("Next(1)=%d, want %d", got, 3)
	}
	if got := Next(line, 4); got != 4 {
		t.Fatalf("Next(4)=%d, want %d", got, 4)
	}

	if got := Prev(line, 3); got != 1 {
		t.Fatalf("Prev(3)=%d, want %d", got, 1)
	}
	if got := Prev(line, 1); got != 0 {
		t.Fatalf("Prev(1)=%d, want %d", got, 0)
	}
	if got := Prev(line, 0); got != 0 {
		t.Fatalf("Prev(0)=%d, want %d", got, 0)
	}
}

func TestCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"e\u0301x", 2},
	}
	for _, tc := range cases {
		if got := Count([]rune(tc.in)); got != tc.want {
			t.Fatalf("Count(%q)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsWord(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '_', 'é'} {
		if !IsWord(r) {
			t.Fatalf("IsWord(%q)=false, want true", r)
		}
	}
	for _, r := range []rune{' ', '(', '"', '\t'} {
		if IsWord(r) {
			t.Fatalf("IsWord(%q)=true, want false", r)
		}
	}
}
