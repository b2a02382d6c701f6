package textutil

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \t\r\n ", want: ""},
		{name: "case folding", input: "Hello WORLD", want: "hello world"},
		{name: "collapse runs", input: "a  b\t\tc\n\nd", want: "a b c d"},
		{name: "control chars", input: "a\x00b\x1fc\x7fd", want: "a b c d"},
		{name: "trim", input: "  padded  ", want: "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Already normalized text",
		"MIXED   Case \x07 with\tcontrol  chars",
		"  unicode éÉ spacing here  ",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
		for _, r := range once {
			if r < 0x20 || r == 0x7f {
				t.Errorf("Normalize(%q) contains control character %q", input, r)
			}
		}
		if strings.Contains(once, "  ") {
			t.Errorf("Normalize(%q) contains a whitespace run: %q", input, once)
		}
		for _, r := range once {
			if unicode.IsSpace(r) && r != ' ' {
				t.Errorf("Normalize(%q) contains non-space whitespace %q", input, r)
			}
		}
	}
}

func TestHash(t *testing.T) {
	// sha256("hello world")
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := Hash("hello world"); got != want {
		t.Errorf("Hash = %s, want %s", got, want)
	}
	if Hash("a") == Hash("b") {
		t.Error("distinct inputs produced the same digest")
	}
}
