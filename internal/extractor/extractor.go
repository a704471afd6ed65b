package extractor

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"i18n-analyzer/internal/textutil"

	"github.com/rs/zerolog/log"
)

// categoryPattern matches a nested object opener at the start of a line:
//
//	segment: {
//
// The brace may sit on a later line when a formatter reflowed the code.
var categoryPattern = regexp.MustCompile(`(?m)^[ \t]*([a-zA-Z_][a-zA-Z0-9_]*)\s*:\s*\{`)

// localeLeafPattern matches a translation value at the start of a line:
//
//	segment: 'text'
//
// Only the opening quote is required; the value may continue past it.
var localeLeafPattern = regexp.MustCompile("(?m)^[ \t]*([a-zA-Z_][a-zA-Z0-9_]*)\\s*:\\s*['\"`]")

// typeLeafPattern matches a typed string field in a type-definition file:
//
//	segment: string;
var typeLeafPattern = regexp.MustCompile(`(?m)^[ \t]*([a-zA-Z_][a-zA-Z0-9_]*)\s*:\s*string;`)

// LocaleExtractor reconstructs dotted key paths from a locale declaration
// file, tracking nesting through indentation rather than a full parse.
type LocaleExtractor struct{}

func NewLocaleExtractor() *LocaleExtractor { return &LocaleExtractor{} }

// Extract returns the declaration table and category set for one locale file.
func (e *LocaleExtractor) Extract(content string) *Result {
	return extract(content, localeLeafPattern)
}

// ExtractFile reads and extracts path. A missing or unreadable file yields an
// empty result with a warning; extraction never fails the run.
func (e *LocaleExtractor) ExtractFile(path string) *Result {
	content, ok := readArtifact(path)
	if !ok {
		return emptyResult()
	}
	return e.Extract(content)
}

// TypeExtractor reconstructs dotted key paths from the type-definition file,
// where leaves are typed string fields instead of quoted literals. Categories
// are tracked internally to shape paths but only the table is returned.
type TypeExtractor struct{}

func NewTypeExtractor() *TypeExtractor { return &TypeExtractor{} }

// Extract returns the declaration table for the type-definition content.
func (e *TypeExtractor) Extract(content string) Table {
	return extract(content, typeLeafPattern).Table
}

// ExtractFile reads and extracts path, with the same missing-file policy as
// LocaleExtractor.ExtractFile.
func (e *TypeExtractor) ExtractFile(path string) Table {
	content, ok := readArtifact(path)
	if !ok {
		return Table{}
	}
	return e.Extract(content)
}

// extract runs the shared state machine: collect category and leaf matches
// over the comment-stripped buffer, sort them into document order, and walk
// them with an indentation stack that closes scopes on outdent.
func extract(content string, leafPattern *regexp.Regexp) *Result {
	// Indentation is measured on the original lines; stripping only removes
	// text after the indentation column.
	lines := strings.Split(content, "\n")
	stripped := textutil.StripComments(content)

	var matches []match
	for _, loc := range categoryPattern.FindAllStringSubmatchIndex(stripped, -1) {
		matches = append(matches, match{
			pos:      loc[0],
			line:     textutil.LineOf(stripped, loc[0]),
			segment:  stripped[loc[2]:loc[3]],
			category: true,
		})
	}
	for _, loc := range leafPattern.FindAllStringSubmatchIndex(stripped, -1) {
		matches = append(matches, match{
			pos:     loc[0],
			line:    textutil.LineOf(stripped, loc[0]),
			segment: stripped[loc[2]:loc[3]],
		})
	}

	// Category and leaf declarations interleave, so document order matters.
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	res := emptyResult()
	var stack []stackEntry

	for _, m := range matches {
		var line string
		if m.line-1 < len(lines) {
			line = lines[m.line-1]
		}
		indent := textutil.IndentWidth(line)

		// Close every scope at or beyond this indentation: a sibling closes
		// the previous scope, an outdent closes several at once.
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		if m.category {
			stack = append(stack, stackEntry{segment: m.segment, indent: indent})
			key := joinPath(stack, "")
			if _, ok := res.Table[key]; !ok {
				res.Table[key] = m.line
			}
			res.Categories[key] = struct{}{}
			continue
		}

		// The leaf itself is never pushed onto the stack.
		key := joinPath(stack, m.segment)
		if _, ok := res.Table[key]; !ok {
			res.Table[key] = m.line
		}
	}

	return res
}

func joinPath(stack []stackEntry, leaf string) string {
	segments := make([]string, 0, len(stack)+1)
	for _, entry := range stack {
		segments = append(segments, entry.segment)
	}
	if leaf != "" {
		segments = append(segments, leaf)
	}
	return strings.Join(segments, ".")
}

func emptyResult() *Result {
	return &Result{Table: Table{}, Categories: CategorySet{}}
}

func readArtifact(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Declaration file not available, continuing with no keys")
		return "", false
	}
	return string(data), true
}
