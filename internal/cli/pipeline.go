package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"i18n-analyzer/internal/config"
	"i18n-analyzer/internal/extractor"
	"i18n-analyzer/internal/reconcile"
	"i18n-analyzer/internal/scanner"

	"github.com/rs/zerolog/log"
)

// analysis bundles everything one run produces.
type analysis struct {
	locales    []reconcile.Locale
	categories extractor.CategorySet
	types      extractor.Table
	scan       *scanner.Result
	usage      scanner.Index
	reconciled *reconcile.Result
}

// analyze runs the full pipeline: extraction, scanning, reconciliation.
// Missing declaration files and unreadable sources are warned about and
// recovered from; only an unusable source root fails the run.
func analyze(root string, cfg *config.Config) (*analysis, error) {
	localeExtractor := extractor.NewLocaleExtractor()

	categories := extractor.CategorySet{}
	locales := make([]reconcile.Locale, 0, len(cfg.Locales))
	for _, locale := range cfg.Locales {
		res := localeExtractor.ExtractFile(filepath.Join(root, locale.Path))
		locales = append(locales, reconcile.Locale{Code: locale.Code, Table: res.Table})
		for key := range res.Categories {
			categories[key] = struct{}{}
		}
		log.Info().
			Str("locale", locale.Code).
			Int("keys", len(res.Table)).
			Int("categories", len(res.Categories)).
			Msg("Extracted locale keys")
	}

	types := extractor.NewTypeExtractor().ExtractFile(filepath.Join(root, cfg.TypesFile))
	log.Info().Int("keys", len(types)).Msg("Extracted type keys")

	sc := scanner.New(scanner.Options{
		Root:             filepath.Join(root, cfg.SourceRoot),
		Extensions:       cfg.Extensions,
		SkipSegment:      cfg.SkipSegment,
		Function:         cfg.Function,
		IndirectFiles:    cfg.IndirectFiles,
		IndirectProperty: cfg.IndirectProperty,
	})

	scanRes, err := sc.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan source tree: %w", err)
	}

	usage := scanRes.Merged()

	reconciled := reconcile.Reconcile(reconcile.Input{
		Locales:    locales,
		Types:      types,
		Categories: categories,
		Usage:      usage,
		Indirect:   scanRes.IndirectKeys(),
	})

	return &analysis{
		locales:    locales,
		categories: categories,
		types:      types,
		scan:       scanRes,
		usage:      usage,
		reconciled: reconciled,
	}, nil
}

// logSummary mirrors the per-class counts and depth distribution to the
// console.
func logSummary(res *analysis) {
	log.Info().
		Int("leaf_keys", len(res.reconciled.AllKeys)).
		Int("categories", len(res.categories)).
		Int("used", len(res.usage)).
		Int("missing", len(res.reconciled.Missing)).
		Int("unused", len(res.reconciled.Unused)).
		Msg("Analysis summary")

	for _, inc := range res.reconciled.Inconsistencies {
		log.Info().
			Str("present", inc.Present).
			Str("absent", inc.Absent).
			Int("count", len(inc.Keys)).
			Msg("Locale inconsistency")
	}

	depths := make([]int, 0, len(res.reconciled.Depths))
	for depth := range res.reconciled.Depths {
		depths = append(depths, depth)
	}
	sort.Ints(depths)
	for _, depth := range depths {
		log.Info().
			Int("level", depth).
			Int("keys", len(res.reconciled.Depths[depth])).
			Msg("Nesting depth")
	}
}
