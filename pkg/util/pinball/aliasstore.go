package pinball

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/pinstats/internal/logger"
)

// AliasStore is the persisted form of the machine alias data: a JSON array
// of MachineEntry objects. Array order is insertion order and is preserved
// across maintenance operations, so diffs against the store file stay
// reviewable.
type AliasStore struct {
	Path    string
	Entries []MachineEntry
}

// LoadAliasStore reads the alias store file. A missing or malformed store
// is an error; callers treat it as fatal at startup.
func LoadAliasStore(path string) (*AliasStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias store %s: %w", path, err)
	}
	var entries []MachineEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse alias store %s: %w", path, err)
	}
	return &AliasStore{Path: path, Entries: entries}, nil
}

// Save writes the store back to its file: two-space indented JSON with a
// trailing newline, entries in their original order, untouched entries
// byte-identical to how the last save left them.
func (s *AliasStore) Save() error {
	data, err := json.MarshalIndent(s.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode alias store: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create alias store directory: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write alias store %s: %w", s.Path, err)
	}
	return nil
}

// Table builds the resolution table from the current entries
func (s *AliasStore) Table() (*AliasTable, error) {
	return NewAliasTable(s.Entries)
}

// Entry returns a pointer to the stored entry for the given canonical key
func (s *AliasStore) Entry(key string) (*MachineEntry, bool) {
	for i := range s.Entries {
		if s.Entries[i].Key == key {
			return &s.Entries[i], true
		}
	}
	return nil, false
}

// owner returns the canonical key already claiming the given label, if any.
// Keys, display names and variations all claim their spellings, compared
// case-insensitively on the trimmed form.
func (s *AliasStore) owner(label string) (string, bool) {
	fold := strings.ToLower(strings.TrimSpace(label))
	if fold == "" {
		return "", false
	}
	for i := range s.Entries {
		e := &s.Entries[i]
		if strings.ToLower(strings.TrimSpace(e.Key)) == fold {
			return e.Key, true
		}
		if strings.ToLower(strings.TrimSpace(e.Name)) == fold {
			return e.Key, true
		}
		for _, v := range e.Variations {
			if strings.ToLower(strings.TrimSpace(v)) == fold {
				return e.Key, true
			}
		}
	}
	return "", false
}

/**
* AddMachine appends a new canonical entry to the store.
* The new key, name and variations must not collide (case-insensitively)
* with anything another entry already claims; collisions are rejected, not
* silently merged.
 */
func (s *AliasStore) AddMachine(e MachineEntry) error {
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Errorf("cannot add a machine with an empty key")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("cannot add machine %q with an empty display name", e.Key)
	}
	labels := append([]string{e.Key, e.Name}, e.Variations...)
	for _, label := range labels {
		if owner, ok := s.owner(label); ok {
			return fmt.Errorf("label %q already belongs to %q", label, owner)
		}
	}
	s.Entries = append(s.Entries, e)
	logger.Info("added machine", e.Key)
	return nil
}

/**
* AddVariation registers another spelling under an existing canonical key.
* Adding a spelling the key already owns is a no-op. Adding a spelling a
* DIFFERENT key owns is rejected with the conflict named; the caller has to
* fix the data, we never silently re-point a variation.
 */
func (s *AliasStore) AddVariation(key, variation string) error {
	entry, ok := s.Entry(key)
	if !ok {
		return fmt.Errorf("no machine with canonical key %q", key)
	}
	variation = strings.TrimSpace(variation)
	if variation == "" {
		return fmt.Errorf("cannot add an empty variation to %q", key)
	}
	if owner, ok := s.owner(variation); ok {
		if owner == key {
			logger.Debug("variation already registered", key, variation)
			return nil
		}
		return fmt.Errorf("variation %q already belongs to %q, not adding to %q", variation, owner, key)
	}
	entry.Variations = append(entry.Variations, variation)
	logger.Info("added variation", variation, "to", key)
	return nil
}
