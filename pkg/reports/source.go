package reports

import (
	"github.com/richard-senior/pinstats/internal/logger"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

// Source bundles the loaded inputs every generator consumes: the parsed
// archive, the alias resolution table, the two reference files and the
// default selection filter.
type Source struct {
	Archive  *pinball.Archive
	Aliases  *pinball.AliasTable
	Venues   map[string]pinball.VenueInfo
	Machines map[string]pinball.MachineInfo
	Filter   pinball.Filter
}

/**
* LoadSource assembles a Source from the global configuration.
* The archive and the alias store are mandatory; a failure there is fatal
* to the run. The venue and machine reference files are optional: reports
* degrade to archive-only output when they are missing.
 */
func LoadSource() (*Source, error) {
	archive, err := pinball.GetArchive(pinball.GetArchivePath())
	if err != nil {
		return nil, err
	}
	store, err := pinball.LoadAliasStore(pinball.GetAliasPath())
	if err != nil {
		return nil, err
	}
	table, err := store.Table()
	if err != nil {
		return nil, err
	}
	src := &Source{
		Archive: archive,
		Aliases: table,
		Filter:  pinball.DefaultFilter(),
	}
	if venues, err := pinball.LoadVenues(pinball.Config.VenuesPath); err == nil {
		src.Venues = venues
	} else {
		logger.Warn("venue reference unavailable:", err)
		src.Venues = map[string]pinball.VenueInfo{}
	}
	if machines, err := pinball.LoadMachineIndex(pinball.Config.MachinesPath); err == nil {
		src.Machines = machines
	} else {
		logger.Warn("machine reference unavailable:", err)
		src.Machines = map[string]pinball.MachineInfo{}
	}
	return src, nil
}

// machineAccumulators folds the selected matches into machine-keyed
// accumulators, both sides of every completed game, labels resolved to
// canonical keys first
func machineAccumulators(src *Source, f pinball.Filter) *pinball.Accumulators {
	set := pinball.NewAccumulators()
	for _, m := range src.Archive.Select(f) {
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				g := &r.Games[i]
				if !g.Done {
					continue
				}
				key, _ := src.Aliases.Resolve(g.Machine)
				set.Get(key).AccumulateMachine(g, r.N)
			}
		}
	}
	return set
}

// teamAccumulator folds one team's side of all its selected matches
func teamAccumulator(src *Source, teamKey string) *pinball.Accumulator {
	acc := &pinball.Accumulator{Key: teamKey}
	f := src.Filter
	f.Team = teamKey
	for _, m := range src.Archive.Select(f) {
		side, ok := m.SideOf(teamKey)
		if !ok {
			continue
		}
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				acc.AccumulateTeam(&r.Games[i], r.N, side)
			}
		}
	}
	return acc
}

// teamMachineAccumulators folds one team's side per canonical machine key
func teamMachineAccumulators(src *Source, teamKey string) *pinball.Accumulators {
	set := pinball.NewAccumulators()
	f := src.Filter
	f.Team = teamKey
	for _, m := range src.Archive.Select(f) {
		side, ok := m.SideOf(teamKey)
		if !ok {
			continue
		}
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				g := &r.Games[i]
				if !g.Done {
					continue
				}
				key, _ := src.Aliases.Resolve(g.Machine)
				set.Get(key).AccumulateTeam(g, r.N, side)
			}
		}
	}
	return set
}
