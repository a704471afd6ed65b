package textutil

import (
	"regexp"
	"strings"
)

// lineCommentPattern matches a // comment through the end of its line.
var lineCommentPattern = regexp.MustCompile(`//[^\n]*`)

// blockCommentPattern matches a /* ... */ comment, including newlines.
var blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

// StripComments removes line and block comments from a buffer while keeping
// its line count intact: every newline inside a block comment is preserved so
// line numbers computed downstream stay valid. A comment opener inside a
// string literal is still treated as a comment; declaration and call-site
// files are expected not to contain such strings.
func StripComments(content string) string {
	content = lineCommentPattern.ReplaceAllString(content, "")
	return blockCommentPattern.ReplaceAllStringFunc(content, func(m string) string {
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
}

// IndentWidth returns the number of leading whitespace characters on a line.
func IndentWidth(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// LineOf returns the 1-based line number of a byte offset in content.
func LineOf(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
