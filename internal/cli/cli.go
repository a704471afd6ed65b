package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"i18n-analyzer/internal/config"
	"i18n-analyzer/internal/extractor"
	"i18n-analyzer/internal/report"
	"i18n-analyzer/internal/textutil"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:          "i18n-analyzer",
		Short:        "Reconcile declared i18n keys against their usage in a source tree",
		Long:         "Extracts the dotted key namespace from locale and type declaration files,\nscans source files for translation calls, and reports missing, unused, and\ninconsistent keys.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(keysCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [project-root]",
		Short: "Extract keys, scan usages, and write the markdown report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			return runAnalyze(projectRoot(args), configPath, output)
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().String("output", "", "Report output path, relative to the project root (overrides config)")

	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [project-root]",
		Short: "Run the analysis and fail when missing, unused, or inconsistent keys exist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runCheck(projectRoot(args), configPath)
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")

	return cmd
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <locale-code|types> [project-root]",
		Short: "List the keys extracted from one declaration artifact",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runKeys(projectRoot(args[1:]), configPath, args[0])
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")

	return cmd
}

func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// runAnalyze handles the `analyze` command.
func runAnalyze(root, configPath, output string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if output != "" {
		cfg.ReportFile = output
	}

	res, err := analyze(root, cfg)
	if err != nil {
		return err
	}
	logSummary(res)

	builder := &report.Builder{
		LinkPrefix:   cfg.LinkPrefix,
		MaxLocations: cfg.MaxLocations,
		Locales:      res.locales,
		Types:        res.types,
		Usage:        res.usage,
		Result:       res.reconciled,
	}

	outPath := filepath.Join(root, cfg.ReportFile)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(builder.Render()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info().
		Str("path", outPath).
		Int("keys", len(res.reconciled.AllKeys)).
		Msg("Report generated")

	return nil
}

// runCheck handles the `check` command: same pipeline, exit status instead
// of a report.
func runCheck(root, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	res, err := analyze(root, cfg)
	if err != nil {
		return err
	}
	logSummary(res)

	problems := 0

	if n := len(res.reconciled.Missing); n > 0 {
		problems += n
		keys := make([]string, 0, n)
		for _, mk := range res.reconciled.Missing {
			keys = append(keys, mk.Key)
		}
		log.Warn().
			Int("count", n).
			Str("keys", textutil.Truncate(strings.Join(keys, ", "), 120)).
			Msg("Keys used in code but not defined")
	}

	if n := len(res.reconciled.Unused); n > 0 {
		problems += n
		log.Warn().
			Int("count", n).
			Str("keys", textutil.Truncate(strings.Join(res.reconciled.Unused, ", "), 120)).
			Msg("Keys defined but never used")
	}

	for _, inc := range res.reconciled.Inconsistencies {
		problems += len(inc.Keys)
		log.Warn().
			Str("present", inc.Present).
			Str("absent", inc.Absent).
			Int("count", len(inc.Keys)).
			Msg("Locale files are inconsistent")
	}

	if problems > 0 {
		return fmt.Errorf("i18n check failed: %d problems found", problems)
	}

	log.Info().Int("keys", len(res.reconciled.AllKeys)).Msg("i18n check passed")
	return nil
}

// runKeys handles the `keys` command.
func runKeys(root, configPath, artifact string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var table extractor.Table
	switch {
	case artifact == "types":
		table = extractor.NewTypeExtractor().ExtractFile(filepath.Join(root, cfg.TypesFile))
	default:
		found := false
		for _, locale := range cfg.Locales {
			if locale.Code == artifact {
				table = extractor.NewLocaleExtractor().ExtractFile(filepath.Join(root, locale.Path)).Table
				found = true
				break
			}
		}
		if !found {
			codes := make([]string, 0, len(cfg.Locales)+1)
			for _, locale := range cfg.Locales {
				codes = append(codes, locale.Code)
			}
			codes = append(codes, "types")
			return fmt.Errorf("unknown artifact %q, expected one of: %s", artifact, strings.Join(codes, ", "))
		}
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", table[key], key)
	}

	log.Info().Str("artifact", artifact).Int("keys", len(keys)).Msg("Keys listed")
	return nil
}
