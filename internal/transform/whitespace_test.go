package transform

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type cleanWhitespaceTestCase struct {
	name       string
	content    string
	aggressive bool
	want       string
}

func TestCleanWhitespace(t *testing.T) {
	tests := []cleanWhitespaceTestCase{
		{
			name:       "trailing spaces removed",
			content:    "a = 1;   \nb = 2;\t\n",
			aggressive: true,
			want:       "a = 1;\nb = 2;\n",
		},
		{
			name:       "inner space runs collapse outside indentation",
			content:    "    var x =    1;\n",
			aggressive: true,
			want:       "    var x = 1;\n",
		},
		{
			name:       "tabs become two-space indent",
			content:    "\tif (x) {\n\t\treturn;\n\t}\n",
			aggressive: true,
			want:       "  if (x) {\n    return;\n  }\n",
		},
		{
			name:       "aggressive collapses blank runs to one",
			content:    "a\n\n\n\n\nb\n",
			aggressive: true,
			want:       "a\n\nb\n",
		},
		{
			name:       "conservative leaves up to two blanks",
			content:    "a\n\n\n\n\nb\n",
			aggressive: false,
			want:       "a\n\n\nb\n",
		},
		{
			name:       "exactly one trailing newline",
			content:    "a\n\n\n",
			aggressive: true,
			want:       "a\n",
		},
		{
			name:       "missing trailing newline added",
			content:    "a",
			aggressive: true,
			want:       "a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanWhitespace(tt.content, tt.aggressive)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CleanWhitespace() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCleanWhitespaceIsFixedPoint(t *testing.T) {
	inputs := []string{
		"a = 1;   \n\tb =  2;\n\n\n\nc\n",
		"   indented\n\n\n  more   spaces  \n",
		"",
		"single line no newline",
	}
	for _, in := range inputs {
		for _, aggressive := range []bool{true, false} {
			once := CleanWhitespace(in, aggressive)
			twice := CleanWhitespace(once, aggressive)
			if once != twice {
				t.Errorf("not a fixed point (aggressive=%v):\ninput: %q\nonce:  %q\ntwice: %q",
					aggressive, in, once, twice)
			}
		}
	}
}

func TestCleanWhitespacePreservesIndentation(t *testing.T) {
	content := "def f():\n    if x:\n        return  1\n"
	got := CleanWhitespace(content, true)
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, " ") {
			trimmed := strings.TrimLeft(line, " ")
			indent := len(line) - len(trimmed)
			if indent != 4 && indent != 8 {
				t.Errorf("indentation changed: %q", line)
			}
		}
	}
	if !strings.Contains(got, "        return 1") {
		t.Errorf("inner run not collapsed or indent lost: %q", got)
	}
}

func TestCleanWhitespaceLineCount(t *testing.T) {
	// Aside from blank-line collapsing and the trailing-newline guarantee,
	// the logical line count never changes.
	content := "one\ntwo\nthree\n"
	got := CleanWhitespace(content, true)
	if want := content; got != want {
		t.Errorf("CleanWhitespace() = %q, want %q", got, want)
	}
}
