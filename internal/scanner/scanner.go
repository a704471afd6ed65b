package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"i18n-analyzer/internal/filewalker"
	"i18n-analyzer/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Usage records one reference to a key at a source location.
type Usage struct {
	// File is the path relative to the scan root, with forward slashes.
	File string
	// Line is the 1-based line number of the reference.
	Line int
}

// Index maps each key to its references in file scan order.
type Index map[string][]Usage

// Result holds one scan over a source tree.
type Result struct {
	// Direct indexes translation-call references.
	Direct Index
	// Indirect indexes keys referenced through the configured property in
	// the allow-listed configuration files.
	Indirect Index
}

// Merged combines direct and indirect references into one index.
func (r *Result) Merged() Index {
	merged := make(Index, len(r.Direct)+len(r.Indirect))
	for key, usages := range r.Direct {
		merged[key] = append(merged[key], usages...)
	}
	for key, usages := range r.Indirect {
		merged[key] = append(merged[key], usages...)
	}
	return merged
}

// IndirectKeys returns the set of keys referenced through properties.
func (r *Result) IndirectKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(r.Indirect))
	for key := range r.Indirect {
		keys[key] = struct{}{}
	}
	return keys
}

// Options configure a Scanner.
type Options struct {
	// Root is the source tree to scan.
	Root string
	// Extensions is the file extension allow-list.
	Extensions []string
	// SkipSegment excludes files whose relative path contains it; it keeps
	// the declaration files themselves from counting as usages.
	SkipSegment string
	// Function is the translation call identifier, e.g. "t".
	Function string
	// IndirectFiles are root-relative configuration files that reference
	// keys through IndirectProperty instead of a direct call.
	IndirectFiles []string
	// IndirectProperty is the property name holding a key, e.g. "labelKey".
	IndirectProperty string
}

// Scanner finds key references across a source tree.
type Scanner struct {
	root            string
	walker          *filewalker.Walker
	skipSegment     string
	function        string
	indirectFiles   []string
	callPattern     *regexp.Regexp
	indirectPattern *regexp.Regexp
}

// keyCharClass constrains key literals so unrelated call expressions like
// emit('update') or closest('.row') never over-match.
const keyCharClass = `[a-zA-Z0-9._-]+`

// quote matches any of the three quote styles around a key literal.
const quote = "['\"`]"

// boundary stands in for a lookbehind: the call identifier must not be the
// tail of a longer identifier such as createElement or formatText.
const boundary = `(^|[^a-zA-Z0-9_])`

// New creates a Scanner for the given tree and matching options.
func New(opts Options) *Scanner {
	if opts.Function == "" {
		opts.Function = "t"
	}
	if opts.IndirectProperty == "" {
		opts.IndirectProperty = "labelKey"
	}
	return &Scanner{
		root:            opts.Root,
		walker:          filewalker.NewWalker(opts.Extensions),
		skipSegment:     opts.SkipSegment,
		function:        opts.Function,
		indirectFiles:   opts.IndirectFiles,
		callPattern:     callPattern(opts.Function, keyCharClass),
		indirectPattern: regexp.MustCompile(regexp.QuoteMeta(opts.IndirectProperty) + `\s*:\s*` + quote + `(` + keyCharClass + `)` + quote),
	}
}

// callPattern builds the translation-call matcher. (?s) lets a call span
// physical lines, which happens whenever a formatter reflows the arguments.
func callPattern(function, keyExpr string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + boundary + regexp.QuoteMeta(function) +
		`\(\s*` + quote + `(` + keyExpr + `)` + quote + `\s*(?:,.+?)?\s*\)`)
}

// Scan walks the tree once and indexes every reference, direct and indirect.
func (s *Scanner) Scan() (*Result, error) {
	entries, err := s.walker.Walk(s.root)
	if err != nil {
		return nil, err
	}
	log.Info().Int("files", len(entries)).Str("root", s.root).Msg("Scanning source files")

	res := &Result{Direct: Index{}, Indirect: Index{}}

	for _, entry := range entries {
		if s.skipped(entry.Rel) {
			continue
		}
		content, ok := readSource(entry.Path)
		if !ok {
			continue
		}
		stripped := textutil.StripComments(content)
		for _, loc := range s.callPattern.FindAllStringSubmatchIndex(stripped, -1) {
			key := stripped[loc[4]:loc[5]]
			res.Direct[key] = append(res.Direct[key], Usage{
				File: entry.Rel,
				Line: textutil.LineOf(stripped, loc[3]),
			})
		}
	}

	s.scanIndirect(res)
	return res, nil
}

// FindKey re-scans the tree for one key's direct call sites. For any key the
// result matches what Scan reports; it exists for callers that have no global
// index at hand.
func (s *Scanner) FindKey(key string) ([]Usage, error) {
	pattern := callPattern(s.function, regexp.QuoteMeta(key))

	entries, err := s.walker.Walk(s.root)
	if err != nil {
		return nil, err
	}

	var usages []Usage
	for _, entry := range entries {
		if s.skipped(entry.Rel) {
			continue
		}
		content, ok := readSource(entry.Path)
		if !ok {
			continue
		}
		stripped := textutil.StripComments(content)
		for _, loc := range pattern.FindAllStringSubmatchIndex(stripped, -1) {
			usages = append(usages, Usage{
				File: entry.Rel,
				Line: textutil.LineOf(stripped, loc[3]),
			})
		}
	}
	return usages, nil
}

// scanIndirect extracts property-referenced keys from the allow-listed
// configuration files. Files absent from the tree are simply skipped; the
// allow-list is a superset of what any one project contains.
func (s *Scanner) scanIndirect(res *Result) {
	for _, rel := range s.indirectFiles {
		path := filepath.Join(s.root, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		content, ok := readSource(path)
		if !ok {
			continue
		}
		stripped := textutil.StripComments(content)
		for _, loc := range s.indirectPattern.FindAllStringSubmatchIndex(stripped, -1) {
			key := stripped[loc[2]:loc[3]]
			res.Indirect[key] = append(res.Indirect[key], Usage{
				File: rel,
				Line: textutil.LineOf(stripped, loc[0]),
			})
		}
	}
}

func (s *Scanner) skipped(rel string) bool {
	return s.skipSegment != "" && strings.Contains(rel, s.skipSegment)
}

func readSource(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Could not read file, skipping")
		return "", false
	}
	return string(data), true
}
