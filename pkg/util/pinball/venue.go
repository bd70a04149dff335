package pinball

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// VenueInfo is one entry of the venue reference file: the venue's display
// name, the key of the team that calls it home, and the machine keys the
// venue declares on its floor
type VenueInfo struct {
	Name     string   `json:"name"`
	HomeTeam string   `json:"home_team"`
	Machines []string `json:"machines,omitempty"`
}

// HasMachine reports whether the venue declares the given machine key
func (v *VenueInfo) HasMachine(key string) bool {
	for _, m := range v.Machines {
		if m == key {
			return true
		}
	}
	return false
}

// MachineInfo is one entry of the machine reference file
type MachineInfo struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Year         int    `json:"year,omitempty"`
}

// LoadVenues reads the venue reference file: venue key -> VenueInfo
func LoadVenues(path string) (map[string]VenueInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read venue reference %s: %w", path, err)
	}
	var venues map[string]VenueInfo
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to parse venue reference %s: %w", path, err)
	}
	return venues, nil
}

// LoadMachineIndex reads the machine reference file: machine key -> MachineInfo
func LoadMachineIndex(path string) (map[string]MachineInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine reference %s: %w", path, err)
	}
	var machines map[string]MachineInfo
	if err := json.Unmarshal(data, &machines); err != nil {
		return nil, fmt.Errorf("failed to parse machine reference %s: %w", path, err)
	}
	return machines, nil
}

// SortedKeys returns any string-keyed reference map's keys in sorted order,
// for deterministic report output
func SortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
