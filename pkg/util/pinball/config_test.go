package pinball

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultPinstatsConfig()
	assert.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "mnp", cfg.League)
	assert.True(t, cfg.CompleteOnly)
}

func TestValidateConfigRejections(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*PinstatsConfig)
	}{
		{"empty archive path", func(c *PinstatsConfig) { c.ArchivePath = "" }},
		{"empty alias path", func(c *PinstatsConfig) { c.AliasPath = "" }},
		{"empty output path", func(c *PinstatsConfig) { c.OutputPath = "" }},
		{"percentile above 1", func(c *PinstatsConfig) { c.Percentiles = []float64{0.5, 1.5} }},
		{"negative percentile", func(c *PinstatsConfig) { c.Percentiles = []float64{-0.1} }},
		{"zero min games", func(c *PinstatsConfig) { c.MinGamesForStats = 0 }},
		{"negative suggestion cap", func(c *PinstatsConfig) { c.FuzzySuggestMax = -1 }},
		{"tiny chart", func(c *PinstatsConfig) { c.ChartWidth = 10 }},
		{"one bucket", func(c *PinstatsConfig) { c.ChartBuckets = 1 }},
	}

	for _, tc := range testCases {
		cfg := DefaultPinstatsConfig()
		tc.mutate(cfg)
		if err := ValidateConfig(cfg); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	prev := Config
	defer UpdateConfig(prev)

	path := filepath.Join(t.TempDir(), "pinstats.yaml")
	content := `
archive_path: /srv/matches
league: nwp
season: 3
min_games_for_stats: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadConfigFile(path))

	assert.Equal(t, "/srv/matches", Config.ArchivePath)
	assert.Equal(t, "nwp", Config.League)
	assert.Equal(t, 3, Config.Season)
	assert.Equal(t, 5, Config.MinGamesForStats)
	assert.Equal(t, "data/venues.json", Config.VenuesPath, "unset keys keep their defaults")
}

func TestLoadConfigFileMissingIsFine(t *testing.T) {
	prev := Config
	defer UpdateConfig(prev)

	err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err, "a missing config file means defaults plus environment")
	assert.Equal(t, DefaultPinstatsConfig().ArchivePath, Config.ArchivePath)
}

func TestLoadConfigFileBadYAML(t *testing.T) {
	prev := Config
	defer UpdateConfig(prev)

	path := filepath.Join(t.TempDir(), "pinstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("league: [unclosed"), 0o644))
	if err := LoadConfigFile(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvironmentOverridesWin(t *testing.T) {
	prev := Config
	defer UpdateConfig(prev)

	path := filepath.Join(t.TempDir(), "pinstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("league: mnp\nseason: 21\n"), 0o644))

	t.Setenv("PINSTATS_LEAGUE", "nwp")
	t.Setenv("PINSTATS_SEASON", "4")
	t.Setenv("PINSTATS_CHARTS", "1")

	require.NoError(t, LoadConfigFile(path))
	assert.Equal(t, "nwp", Config.League)
	assert.Equal(t, 4, Config.Season)
	assert.True(t, Config.ChartsEnabled)
}

func TestConfigGetters(t *testing.T) {
	prev := Config
	defer UpdateConfig(prev)
	UpdateConfig(DefaultPinstatsConfig())

	assert.Equal(t, Config.ArchivePath, GetArchivePath())
	assert.Equal(t, Config.AliasPath, GetAliasPath())
	assert.Equal(t, Config.OutputPath, GetOutputPath())
	assert.Equal(t, Config.Percentiles, GetPercentiles())

	f := DefaultFilter()
	assert.Equal(t, Config.League, f.League)
	assert.Equal(t, Config.Season, f.Season)
	assert.Equal(t, Config.CompleteOnly, f.CompleteOnly)
}
