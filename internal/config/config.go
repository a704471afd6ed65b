package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Locale names one declaration file to extract and reconcile.
type Locale struct {
	Code string `yaml:"code"`
	Path string `yaml:"path"`
}

// Config holds every knob of an analysis run. Paths are relative to the
// project root the command is invoked with.
type Config struct {
	// SourceRoot is the tree scanned for key references.
	SourceRoot string `yaml:"source_root"`
	// Locales are the declaration files, one per supported language.
	Locales []Locale `yaml:"locales"`
	// TypesFile is the type-definition file with typed string fields.
	TypesFile string `yaml:"types_file"`
	// Extensions is the source file allow-list for scanning.
	Extensions []string `yaml:"extensions"`
	// SkipSegment excludes declaration files from the usage scan.
	SkipSegment string `yaml:"skip_segment"`
	// Function is the translation call identifier.
	Function string `yaml:"function"`
	// IndirectFiles declare keys through IndirectProperty for dynamic
	// lookup instead of a direct call.
	IndirectFiles    []string `yaml:"indirect_files"`
	IndirectProperty string   `yaml:"indirect_property"`
	// ReportFile is where the markdown report is written.
	ReportFile string `yaml:"report_file"`
	// LinkPrefix is the relative path from the report to SourceRoot, used
	// for clickable links.
	LinkPrefix string `yaml:"link_prefix"`
	// MaxLocations caps linked call sites per key in the report.
	MaxLocations int `yaml:"max_locations"`
}

// Default returns the configuration matching the MrRSS frontend layout.
func Default() *Config {
	return &Config{
		SourceRoot: "frontend/src",
		Locales: []Locale{
			{Code: "en", Path: "frontend/src/i18n/locales/en.ts"},
			{Code: "zh", Path: "frontend/src/i18n/locales/zh.ts"},
		},
		TypesFile:   "frontend/src/i18n/types.ts",
		Extensions:  []string{".vue", ".ts", ".tsx", ".js", ".jsx"},
		SkipSegment: "i18n/",
		Function:    "t",
		IndirectFiles: []string{
			"composables/rules/useRuleOptions.ts",
			"composables/filter/useFilterFields.ts",
		},
		IndirectProperty: "labelKey",
		ReportFile:       "tools/i18n-analyzer/i18n_usage_report.md",
		LinkPrefix:       "../../frontend/src",
		MaxLocations:     10,
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.SourceRoot = getEnv("I18N_SOURCE_ROOT", cfg.SourceRoot)
	cfg.TypesFile = getEnv("I18N_TYPES_FILE", cfg.TypesFile)
	cfg.SkipSegment = getEnv("I18N_SKIP_SEGMENT", cfg.SkipSegment)
	cfg.Function = getEnv("I18N_FUNCTION", cfg.Function)
	cfg.IndirectProperty = getEnv("I18N_INDIRECT_PROPERTY", cfg.IndirectProperty)
	cfg.ReportFile = getEnv("I18N_REPORT_FILE", cfg.ReportFile)
	cfg.LinkPrefix = getEnv("I18N_LINK_PREFIX", cfg.LinkPrefix)
	cfg.MaxLocations = getEnvInt("I18N_MAX_LOCATIONS", cfg.MaxLocations)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
