package reconcile

import (
	"sort"
	"strings"

	"i18n-analyzer/internal/extractor"
	"i18n-analyzer/internal/scanner"
)

// Locale pairs a locale code with its extracted declaration table.
type Locale struct {
	Code  string
	Table extractor.Table
}

// Input collects everything the reconciler reads. All tables are already
// built; reconciliation itself is a pure computation.
type Input struct {
	Locales []Locale
	// Types is the table extracted from the type-definition file.
	Types extractor.Table
	// Categories is the category set unioned across all locales.
	Categories extractor.CategorySet
	// Usage is the merged usage index, direct and indirect.
	Usage scanner.Index
	// Indirect is the set of keys referenced through properties.
	Indirect map[string]struct{}
}

// MissingKey is a key referenced in code but declared nowhere.
type MissingKey struct {
	Key    string
	Usages []scanner.Usage
}

// DeclaredKey is a key with its declaring line in the locale that has it.
type DeclaredKey struct {
	Key  string
	Line int
}

// Inconsistency lists keys declared in one locale but absent from another.
type Inconsistency struct {
	// Present is the locale code the keys exist in.
	Present string
	// Absent is the locale code the keys are missing from.
	Absent string
	Keys   []DeclaredKey
}

// Result is the reconciliation output consumed by reporting.
type Result struct {
	// AllKeys is the sorted union of declared leaf keys across all
	// artifacts, with categories excluded.
	AllKeys []string
	// Missing are keys referenced in code but never declared.
	Missing []MissingKey
	// Unused are declared keys with no direct or indirect reference.
	Unused []string
	// Inconsistencies hold per-direction locale differences.
	Inconsistencies []Inconsistency
	// Depths groups AllKeys by segment count.
	Depths map[int][]string
}

// Depth returns the nesting depth of a key: its segment count.
func Depth(key string) int {
	return strings.Count(key, ".") + 1
}

// TopLevel reports whether a key sits outside any category.
func TopLevel(key string) bool {
	return !strings.Contains(key, ".")
}

// Reconcile computes set differences and depth statistics over the built
// tables in a single deterministic pass.
func Reconcile(in Input) *Result {
	declared := make(map[string]struct{})
	for _, locale := range in.Locales {
		for key := range locale.Table {
			declared[key] = struct{}{}
		}
	}
	for key := range in.Types {
		declared[key] = struct{}{}
	}

	res := &Result{Depths: make(map[int][]string)}

	// Categories are structural, never reportable content. A key declared as
	// a category anywhere stays excluded even if another artifact declares
	// it as a leaf.
	for key := range declared {
		if _, isCategory := in.Categories[key]; isCategory {
			continue
		}
		res.AllKeys = append(res.AllKeys, key)
	}
	sort.Strings(res.AllKeys)

	for _, key := range res.AllKeys {
		depth := Depth(key)
		res.Depths[depth] = append(res.Depths[depth], key)
	}

	for key, usages := range in.Usage {
		if _, ok := declared[key]; ok {
			continue
		}
		if _, ok := in.Categories[key]; ok {
			continue
		}
		res.Missing = append(res.Missing, MissingKey{Key: key, Usages: usages})
	}
	sort.Slice(res.Missing, func(i, j int) bool { return res.Missing[i].Key < res.Missing[j].Key })

	for _, key := range res.AllKeys {
		if len(in.Usage[key]) > 0 {
			continue
		}
		if _, ok := in.Indirect[key]; ok {
			continue
		}
		res.Unused = append(res.Unused, key)
	}

	for i, present := range in.Locales {
		for j, absent := range in.Locales {
			if i == j {
				continue
			}
			diff := localeDiff(present, absent, in.Categories)
			if len(diff) > 0 {
				res.Inconsistencies = append(res.Inconsistencies, Inconsistency{
					Present: present.Code,
					Absent:  absent.Code,
					Keys:    diff,
				})
			}
		}
	}

	return res
}

// localeDiff returns the non-category keys present in a but absent from b,
// with the line they are declared at in a.
func localeDiff(a, b Locale, categories extractor.CategorySet) []DeclaredKey {
	var keys []DeclaredKey
	for key, line := range a.Table {
		if _, ok := b.Table[key]; ok {
			continue
		}
		if _, ok := categories[key]; ok {
			continue
		}
		keys = append(keys, DeclaredKey{Key: key, Line: line})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return keys
}
