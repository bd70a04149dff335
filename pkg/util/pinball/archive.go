package pinball

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/richard-senior/pinstats/internal/logger"
)

// Archive is the in-memory match archive: one parsed record per file found
// under the archive directory
type Archive struct {
	Dir     string
	Matches []*Match
}

var (
	archiveMu    sync.Mutex
	archiveCache = map[string]*Archive{}
)

// GetArchive returns the process-wide cached archive for dir, loading it on
// first use. Every report in a run shares one parsed archive.
func GetArchive(dir string) (*Archive, error) {
	archiveMu.Lock()
	defer archiveMu.Unlock()
	if a, ok := archiveCache[dir]; ok {
		return a, nil
	}
	a, err := LoadArchive(dir)
	if err != nil {
		return nil, err
	}
	archiveCache[dir] = a
	return a, nil
}

/**
* LoadArchive reads every match record under dir, including subdirectories.
* Records may be plain .json, gzipped .json.gz or brotli .json.br; the
* loader decompresses transparently. Any unreadable or unparseable file
* fails the whole load: a report run never starts on a partially-read
* archive.
 */
func LoadArchive(dir string) (*Archive, error) {
	a := &Archive{Dir: dir}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMatchFile(path) {
			return nil
		}
		data, err := readMatchFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		m, err := ParseMatch(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		a.Matches = append(a.Matches, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load archive from %s: %w", dir, err)
	}
	logger.Info("loaded archive", dir, len(a.Matches))
	return a, nil
}

func isMatchFile(path string) bool {
	return strings.HasSuffix(path, ".json") ||
		strings.HasSuffix(path, ".json.gz") ||
		strings.HasSuffix(path, ".json.br")
}

func readMatchFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader
	switch {
	case strings.HasSuffix(path, ".json.br"):
		r = brotli.NewReader(f)
	case strings.HasSuffix(path, ".json.gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	default:
		r = f
	}
	return io.ReadAll(r)
}

// Len returns the number of loaded matches
func (a *Archive) Len() int {
	return len(a.Matches)
}

// Filter selects matches for a report run. Zero values mean "any".
type Filter struct {
	League       string
	Season       int
	Week         int
	Venue        string // venue key
	Team         string // team key, either side
	CompleteOnly bool
}

/**
* Select returns the matches passing the filter, in archive order.
* League/season/week filtering needs a parseable match key; records whose
* keys do not parse are skipped by those filters (with a debug note) but
* still pass venue/team-only filters.
 */
func (a *Archive) Select(f Filter) []*Match {
	var out []*Match
	for _, m := range a.Matches {
		if f.CompleteOnly && !m.IsComplete() {
			continue
		}
		if f.Venue != "" && m.Venue.Key != f.Venue {
			continue
		}
		if f.Team != "" && !m.HasTeam(f.Team) {
			continue
		}
		if f.League != "" || f.Season != 0 || f.Week != 0 {
			key, err := ParseMatchKey(m.Key)
			if err != nil {
				logger.Debug("skipping unkeyed match in season filter", m.Key)
				continue
			}
			if f.League != "" && !strings.EqualFold(key.League, f.League) {
				continue
			}
			if f.Season != 0 && key.Season != f.Season {
				continue
			}
			if f.Week != 0 && key.Week != f.Week {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
