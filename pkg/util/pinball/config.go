package pinball

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PinstatsConfig contains every configurable parameter of the report suite.
// This centralizes the paths and report knobs so nothing is hard-coded in
// the generators.
type PinstatsConfig struct {
	// === Data locations ===
	ArchivePath  string `yaml:"archive_path"`  // directory of per-match records
	AliasPath    string `yaml:"alias_path"`    // machine alias store file
	VenuesPath   string `yaml:"venues_path"`   // venue reference file
	MachinesPath string `yaml:"machines_path"` // machine reference file
	OutputPath   string `yaml:"output_path"`   // report output directory

	// === Default selection ===
	League       string `yaml:"league"`        // league code used in match keys
	Season       int    `yaml:"season"`        // 0 means every season
	CompleteOnly bool   `yaml:"complete_only"` // count only completed matches

	// === Report parameters ===
	Percentiles      []float64 `yaml:"percentiles"`         // distribution columns
	MinGamesForStats int       `yaml:"min_games_for_stats"` // machines below this are footnoted
	FuzzySuggestMax  int       `yaml:"fuzzy_suggest_max"`   // alias audit suggestion cap

	// === Charts ===
	ChartsEnabled bool `yaml:"charts_enabled"`
	ChartWidth    int  `yaml:"chart_width"`
	ChartHeight   int  `yaml:"chart_height"`
	ChartBuckets  int  `yaml:"chart_buckets"`
}

// DefaultPinstatsConfig returns the default configuration with all standard values
func DefaultPinstatsConfig() *PinstatsConfig {
	return &PinstatsConfig{
		ArchivePath:  "data/matches",
		AliasPath:    "data/machine_aliases.json",
		VenuesPath:   "data/venues.json",
		MachinesPath: "data/machines.json",
		OutputPath:   "reports",

		League:       "mnp",
		Season:       0,
		CompleteOnly: true,

		Percentiles:      []float64{0.25, 0.5, 0.75, 0.9},
		MinGamesForStats: 3,
		FuzzySuggestMax:  3,

		ChartsEnabled: false,
		ChartWidth:    800,
		ChartHeight:   400,
		ChartBuckets:  12,
	}
}

// Global configuration instance
var Config *PinstatsConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultPinstatsConfig()
}

// UpdateConfig replaces the global configuration
func UpdateConfig(newConfig *PinstatsConfig) {
	Config = newConfig
}

/**
* LoadConfigFile overlays a YAML config file onto the defaults and then
* applies PINSTATS_* environment overrides. A missing file is fine (the
* defaults plus environment stand); an unreadable or unparseable file is
* an error.
 */
func LoadConfigFile(path string) error {
	cfg := DefaultPinstatsConfig()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyEnvOverrides(cfg *PinstatsConfig) {
	if v := os.Getenv("PINSTATS_ARCHIVE"); v != "" {
		cfg.ArchivePath = v
	}
	if v := os.Getenv("PINSTATS_ALIASES"); v != "" {
		cfg.AliasPath = v
	}
	if v := os.Getenv("PINSTATS_VENUES"); v != "" {
		cfg.VenuesPath = v
	}
	if v := os.Getenv("PINSTATS_MACHINES"); v != "" {
		cfg.MachinesPath = v
	}
	if v := os.Getenv("PINSTATS_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("PINSTATS_LEAGUE"); v != "" {
		cfg.League = v
	}
	if v := os.Getenv("PINSTATS_SEASON"); v != "" {
		if season, err := strconv.Atoi(v); err == nil {
			cfg.Season = season
		}
	}
	if v := os.Getenv("PINSTATS_CHARTS"); v != "" {
		cfg.ChartsEnabled = v == "true" || v == "1"
	}
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PinstatsConfig) error {
	if config.ArchivePath == "" {
		return fmt.Errorf("ArchivePath must not be empty")
	}
	if config.AliasPath == "" {
		return fmt.Errorf("AliasPath must not be empty")
	}
	if config.OutputPath == "" {
		return fmt.Errorf("OutputPath must not be empty")
	}
	for _, p := range config.Percentiles {
		if p < 0.0 || p > 1.0 {
			return fmt.Errorf("percentile %f is outside [0,1]", p)
		}
	}
	if config.MinGamesForStats < 1 {
		return fmt.Errorf("MinGamesForStats must be at least 1, got: %d", config.MinGamesForStats)
	}
	if config.FuzzySuggestMax < 0 {
		return fmt.Errorf("FuzzySuggestMax must not be negative, got: %d", config.FuzzySuggestMax)
	}
	if config.ChartWidth < 100 || config.ChartHeight < 100 {
		return fmt.Errorf("chart dimensions %dx%d are too small", config.ChartWidth, config.ChartHeight)
	}
	if config.ChartBuckets < 2 {
		return fmt.Errorf("ChartBuckets must be at least 2, got: %d", config.ChartBuckets)
	}
	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetArchivePath returns the configured archive directory
func GetArchivePath() string {
	return Config.ArchivePath
}

// GetAliasPath returns the configured alias store file
func GetAliasPath() string {
	return Config.AliasPath
}

// GetOutputPath returns the configured report output directory
func GetOutputPath() string {
	return Config.OutputPath
}

// GetPercentiles returns the distribution percentiles reports should show
func GetPercentiles() []float64 {
	return Config.Percentiles
}

// DefaultFilter returns the archive filter implied by the configuration
func DefaultFilter() Filter {
	return Filter{
		League:       Config.League,
		Season:       Config.Season,
		CompleteOnly: Config.CompleteOnly,
	}
}
