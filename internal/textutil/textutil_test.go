package textutil

import (
	"strings"
	"testing"
)

func TestStripCommentsLineComment(t *testing.T) {
	t.Parallel()

	got := StripComments("save: 'Save', // the label\ncancel: 'Cancel',\n")
	want := "save: 'Save', \ncancel: 'Cancel',\n"
	if got != want {
		t.Fatalf("StripComments() = %q, want %q", got, want)
	}
}

func TestStripCommentsBlockComment(t *testing.T) {
	t.Parallel()

	got := StripComments("a /* gone */ b")
	if got != "a  b" {
		t.Fatalf("StripComments() = %q, want %q", got, "a  b")
	}
}

func TestStripCommentsPreservesLineCount(t *testing.T) {
	t.Parallel()

	content := "keep: 'one',\n/* first\n   second\n   third */\nafter: 'two',\n"
	got := StripComments(content)

	if strings.Count(got, "\n") != strings.Count(content, "\n") {
		t.Fatalf("line count changed: %d -> %d", strings.Count(content, "\n"), strings.Count(got, "\n"))
	}
	if strings.Contains(got, "first") || strings.Contains(got, "third") {
		t.Fatalf("block comment text survived: %q", got)
	}
	if LineOf(got, strings.Index(got, "after")) != 5 {
		t.Fatalf("line of 'after' = %d, want 5", LineOf(got, strings.Index(got, "after")))
	}
}

func TestStripCommentsIdempotent(t *testing.T) {
	t.Parallel()

	content := "a: 'x', // c\n/* b */ d: 'y',\n"
	once := StripComments(content)
	if twice := StripComments(once); twice != once {
		t.Fatalf("not idempotent: %q != %q", twice, once)
	}
}

func TestIndentWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"key: 'x'", 0},
		{"  key: 'x'", 2},
		{"\t\tkey: 'x'", 2},
		{"    ", 4},
	}
	for _, tt := range tests {
		if got := IndentWidth(tt.line); got != tt.want {
			t.Errorf("IndentWidth(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestLineOf(t *testing.T) {
	t.Parallel()

	content := "one\ntwo\nthree"
	if got := LineOf(content, 0); got != 1 {
		t.Fatalf("LineOf(0) = %d, want 1", got)
	}
	if got := LineOf(content, strings.Index(content, "three")); got != 3 {
		t.Fatalf("LineOf(three) = %d, want 3", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate() = %q, want %q", got, "short")
	}
	if got := Truncate("abcdefghij", 4); got != "abcd..." {
		t.Fatalf("Truncate() = %q, want %q", got, "abcd...")
	}
}
