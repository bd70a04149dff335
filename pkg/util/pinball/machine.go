// Package pinball holds the shared kernel of the report suite: machine
// identity resolution, round/position attribution, score aggregation and
// the statistics primitives they feed. Every report is a thin consumer of
// this package.
package pinball

import (
	"fmt"
	"strings"
)

// MachineEntry is one canonical machine in the alias store
type MachineEntry struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Year         int      `json:"year,omitempty"`
	Variations   []string `json:"variations,omitempty"`
}

// AliasTable resolves raw machine labels to canonical machine identities.
// It is built once from the alias store entries and never mutated; report
// runs share one table by reference.
type AliasTable struct {
	entries map[string]MachineEntry
	order   []string
	exact   map[string]string // exact-case variation -> canonical key
	folded  map[string]string // trimmed, lower-cased variation -> canonical key
}

// NewAliasTable builds the lookup index from the given entries.
// Canonical keys self-map, so resolving an already-canonical key is a
// no-op. A variation claimed by two different canonical keys is a data
// error and fails the build; report runs must not start on an ambiguous
// table.
func NewAliasTable(entries []MachineEntry) (*AliasTable, error) {
	t := &AliasTable{
		entries: make(map[string]MachineEntry, len(entries)),
		order:   make([]string, 0, len(entries)),
		exact:   make(map[string]string),
		folded:  make(map[string]string),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			return nil, fmt.Errorf("alias entry %q has an empty canonical key", e.Name)
		}
		if _, exists := t.entries[e.Key]; exists {
			return nil, fmt.Errorf("duplicate canonical key %q in alias entries", e.Key)
		}
		t.entries[e.Key] = e
		t.order = append(t.order, e.Key)
		if err := t.register(e.Key, e.Key); err != nil {
			return nil, err
		}
		if err := t.register(e.Name, e.Key); err != nil {
			return nil, err
		}
		for _, v := range e.Variations {
			if err := t.register(v, e.Key); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *AliasTable) register(variation, key string) error {
	if variation == "" {
		return nil
	}
	if existing, ok := t.exact[variation]; ok && existing != key {
		return fmt.Errorf("variation %q maps to both %q and %q", variation, existing, key)
	}
	t.exact[variation] = key

	fold := strings.ToLower(strings.TrimSpace(variation))
	if existing, ok := t.folded[fold]; ok && existing != key {
		return fmt.Errorf("variation %q maps to both %q and %q", fold, existing, key)
	}
	t.folded[fold] = key
	return nil
}

/**
* Resolve turns a raw machine label into (canonical key, display name).
*
* Lookup order: the raw label exactly as given, then the trimmed label,
* then the trimmed label lower-cased. The first hit wins. A label with no
* hit passes through trimmed as both key and name: unknown machines are
* aggregated under their own spelling rather than breaking a report run.
 */
func (t *AliasTable) Resolve(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)

	key, ok := t.exact[raw]
	if !ok {
		key, ok = t.exact[trimmed]
	}
	if !ok {
		key, ok = t.folded[strings.ToLower(trimmed)]
	}
	if !ok {
		return trimmed, trimmed
	}
	return key, t.DisplayName(key)
}

// Resolved reports whether the raw label hits the table at all
func (t *AliasTable) Resolved(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if _, ok := t.exact[raw]; ok {
		return true
	}
	if _, ok := t.exact[trimmed]; ok {
		return true
	}
	_, ok := t.folded[strings.ToLower(trimmed)]
	return ok
}

// DisplayName returns the declared display name for a canonical key, or
// the key itself when the key has no entry
func (t *AliasTable) DisplayName(key string) string {
	if e, ok := t.entries[key]; ok && e.Name != "" {
		return e.Name
	}
	return key
}

// Entry returns the machine entry for a canonical key
func (t *AliasTable) Entry(key string) (MachineEntry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Keys returns the canonical keys in alias-store order
func (t *AliasTable) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of canonical entries
func (t *AliasTable) Len() int {
	return len(t.order)
}
