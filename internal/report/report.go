// Package report renders the markdown analysis report with clickable links
// into the scanned source tree.
package report

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"i18n-analyzer/internal/extractor"
	"i18n-analyzer/internal/reconcile"
	"i18n-analyzer/internal/scanner"
)

// DefaultMaxLocations caps how many call sites are linked per key before the
// list is elided with a "(N more)" suffix.
const DefaultMaxLocations = 10

// Builder renders the markdown report from reconciliation output.
type Builder struct {
	// LinkPrefix is the relative path from the report's location to the
	// scan root, prepended when building links.
	LinkPrefix string
	// MaxLocations overrides DefaultMaxLocations when positive.
	MaxLocations int

	Locales []reconcile.Locale
	Types   extractor.Table
	Usage   scanner.Index
	Result  *reconcile.Result
}

// Render produces the full markdown document.
func (b *Builder) Render() string {
	var sb strings.Builder
	sb.WriteString("# i18n Usage Analysis Report\n\n")
	b.writeInconsistencies(&sb)
	b.writeMissing(&sb)
	b.writeUnused(&sb)
	b.writeAllKeys(&sb)
	return sb.String()
}

func (b *Builder) writeInconsistencies(sb *strings.Builder) {
	if len(b.Result.Inconsistencies) == 0 {
		return
	}
	sb.WriteString("## Locale File Inconsistencies\n\n")
	sb.WriteString("Keys that are missing in one of the locale files.\n\n")

	for _, inc := range b.Result.Inconsistencies {
		fmt.Fprintf(sb, "### Keys Missing in %s (Exist in %s)\n\n", inc.Absent, inc.Present)
		fmt.Fprintf(sb, "| Key | %s Line |\n", inc.Present)
		sb.WriteString("|-----|------|\n")
		for _, dk := range inc.Keys {
			fmt.Fprintf(sb, "| %s | %d |\n", dk.Key, dk.Line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
}

func (b *Builder) writeMissing(sb *strings.Builder) {
	if len(b.Result.Missing) == 0 {
		return
	}
	sb.WriteString("## Missing Keys (Used in Code but Not Defined)\n\n")
	sb.WriteString("| Key | Usage Count | Locations |\n")
	sb.WriteString("|-----|-------------|-----------|\n")

	for _, mk := range b.Result.Missing {
		fmt.Fprintf(sb, "| %s | %d | %s |\n", mk.Key, len(mk.Usages), b.usageLinks(mk.Usages))
	}

	sb.WriteString("\n---\n\n")
}

func (b *Builder) writeUnused(sb *strings.Builder) {
	if len(b.Result.Unused) == 0 {
		return
	}
	sb.WriteString("## Unused Keys (Defined but Never Used)\n\n")
	sb.WriteString("| Key |")
	for _, locale := range b.Locales {
		fmt.Fprintf(sb, " %s |", locale.Code)
	}
	sb.WriteString(" types |\n|-----|")
	for range b.Locales {
		sb.WriteString("------|")
	}
	sb.WriteString("------|\n")

	for _, key := range b.Result.Unused {
		fmt.Fprintf(sb, "| %s |", key)
		for _, locale := range b.Locales {
			fmt.Fprintf(sb, " %s |", tableLine(locale.Table, key))
		}
		fmt.Fprintf(sb, " %s |\n", tableLine(b.Types, key))
	}

	sb.WriteString("\n---\n\n")
}

func (b *Builder) writeAllKeys(sb *strings.Builder) {
	sb.WriteString("## All Keys Analysis\n\n")
	sb.WriteString("| Key | Depth |")
	for _, locale := range b.Locales {
		fmt.Fprintf(sb, " %s |", locale.Code)
	}
	sb.WriteString(" types | Usage Count | Locations |\n|-----|-------|")
	for range b.Locales {
		sb.WriteString("------|")
	}
	sb.WriteString("------|-------------|-----------|\n")

	for _, key := range b.Result.AllKeys {
		display := key
		if reconcile.TopLevel(key) {
			display = "**" + key + "**"
		}
		usages := b.Usage[key]

		fmt.Fprintf(sb, "| %s | %d |", display, reconcile.Depth(key))
		for _, locale := range b.Locales {
			fmt.Fprintf(sb, " %s |", tableLine(locale.Table, key))
		}
		fmt.Fprintf(sb, " %s | %d | %s |\n", tableLine(b.Types, key), len(usages), b.usageLinks(usages))
	}

	sb.WriteString("\n")
}

// usageLinks renders up to MaxLocations sorted clickable links for a key.
func (b *Builder) usageLinks(usages []scanner.Usage) string {
	if len(usages) == 0 {
		return ""
	}

	sorted := make([]scanner.Usage, len(usages))
	copy(sorted, usages)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Line < sorted[j].Line
	})

	limit := b.MaxLocations
	if limit <= 0 {
		limit = DefaultMaxLocations
	}
	shown := sorted
	if len(shown) > limit {
		shown = shown[:limit]
	}

	links := make([]string, 0, len(shown))
	for _, u := range shown {
		links = append(links, b.fileLink(u.File, u.Line))
	}

	out := strings.Join(links, ", ")
	if len(sorted) > limit {
		out += fmt.Sprintf(" ... (%d more)", len(sorted)-limit)
	}
	return out
}

// fileLink builds a clickable markdown link to a source location.
func (b *Builder) fileLink(file string, line int) string {
	target := path.Join(b.LinkPrefix, file)
	return fmt.Sprintf("[%s:%d](%s#L%d)", file, line, target, line)
}

func tableLine(table extractor.Table, key string) string {
	if line, ok := table[key]; ok {
		return strconv.Itoa(line)
	}
	return ""
}
