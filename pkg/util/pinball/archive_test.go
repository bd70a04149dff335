package pinball

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchJSON(key, state, awayKey, homeKey, venueKey string) string {
	return fmt.Sprintf(`{
  "key": %q,
  "state": %q,
  "home": {"key": %q, "name": "Home"},
  "away": {"key": %q, "name": "Away"},
  "venue": {"key": %q, "name": "Somewhere"},
  "rounds": []
}`, key, state, homeKey, awayKey, venueKey)
}

func writePlain(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func writeBrotli(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	bw := brotli.NewWriter(f)
	_, err = bw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, bw.Close())
}

func testArchiveDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePlain(t, filepath.Join(dir, "mnp-21-7-DTP-JUP.json"),
		matchJSON("mnp-21-7-DTP-JUP", "complete", "DTP", "JUP", "JUP"))
	writeGzip(t, filepath.Join(dir, "mnp-21-8-JUP-IBX.json.gz"),
		matchJSON("mnp-21-8-JUP-IBX", "complete", "JUP", "IBX", "ICB"))
	writeBrotli(t, filepath.Join(dir, "mnp-21-9-IBX-DTP.json.br"),
		matchJSON("mnp-21-9-IBX-DTP", "scheduled", "IBX", "DTP", "OLA"))

	// subdirectories are walked too
	sub := filepath.Join(dir, "season20")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writePlain(t, filepath.Join(sub, "mnp-20-1-AAA-BBB.json"),
		matchJSON("mnp-20-1-AAA-BBB", "complete", "AAA", "BBB", "BBB"))

	// non-match files are ignored
	writePlain(t, filepath.Join(dir, "README.txt"), "not a match")
	return dir
}

func TestLoadArchiveAllEncodings(t *testing.T) {
	a, err := LoadArchive(testArchiveDir(t))
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())

	keys := map[string]bool{}
	for _, m := range a.Matches {
		keys[m.Key] = true
	}
	assert.True(t, keys["mnp-21-7-DTP-JUP"], "plain json record missing")
	assert.True(t, keys["mnp-21-8-JUP-IBX"], "gzip record missing")
	assert.True(t, keys["mnp-21-9-IBX-DTP"], "brotli record missing")
	assert.True(t, keys["mnp-20-1-AAA-BBB"], "subdirectory record missing")
}

func TestLoadArchiveFailsOnMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	writePlain(t, filepath.Join(dir, "ok.json"),
		matchJSON("mnp-21-1-AAA-BBB", "complete", "AAA", "BBB", "BBB"))
	writePlain(t, filepath.Join(dir, "broken.json"), "{oops")

	if _, err := LoadArchive(dir); err == nil {
		t.Fatal("a single malformed record must fail the whole load")
	}
}

func TestLoadArchiveMissingDir(t *testing.T) {
	if _, err := LoadArchive(filepath.Join(t.TempDir(), "no-such-dir")); err == nil {
		t.Fatal("expected an error for a missing archive directory")
	}
}

func TestGetArchiveCaches(t *testing.T) {
	dir := testArchiveDir(t)
	a, err := GetArchive(dir)
	require.NoError(t, err)
	b, err := GetArchive(dir)
	require.NoError(t, err)
	if a != b {
		t.Fatal("GetArchive must return the cached archive for the same directory")
	}
}

func TestSelectFilters(t *testing.T) {
	a, err := LoadArchive(testArchiveDir(t))
	require.NoError(t, err)

	complete := a.Select(Filter{CompleteOnly: true})
	assert.Len(t, complete, 3, "the scheduled match must be filtered out")

	season21 := a.Select(Filter{Season: 21})
	assert.Len(t, season21, 3)

	week8 := a.Select(Filter{Season: 21, Week: 8})
	require.Len(t, week8, 1)
	assert.Equal(t, "mnp-21-8-JUP-IBX", week8[0].Key)

	dtp := a.Select(Filter{Team: "DTP"})
	assert.Len(t, dtp, 2, "team filter matches either side")

	venue := a.Select(Filter{Venue: "ICB"})
	require.Len(t, venue, 1)
	assert.Equal(t, "mnp-21-8-JUP-IBX", venue[0].Key)

	league := a.Select(Filter{League: "MNP"})
	assert.Len(t, league, 4, "league comparison is case-insensitive")

	nothing := a.Select(Filter{League: "ipl"})
	assert.Empty(t, nothing)
}

func TestSelectSkipsUnparseableKeysInSeasonFilters(t *testing.T) {
	dir := t.TempDir()
	writePlain(t, filepath.Join(dir, "odd.json"),
		matchJSON("exhibition-match", "complete", "AAA", "BBB", "BBB"))
	a, err := LoadArchive(dir)
	require.NoError(t, err)

	assert.Empty(t, a.Select(Filter{Season: 21}), "unkeyed records cannot match a season filter")
	assert.Len(t, a.Select(Filter{Team: "AAA"}), 1, "team-only filters still see unkeyed records")
}
