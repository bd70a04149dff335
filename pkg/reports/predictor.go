package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

/**
* PredictorAuditReport sizes up whether the selected archive could feed a
* match outcome predictor. It audits data volume, machine coverage, label
* hygiene and lineup strength spread, and deliberately builds no model.
 */
func PredictorAuditReport(src *Source) (string, error) {
	all := src.Archive.Select(pinball.Filter{League: src.Filter.League, Season: src.Filter.Season})
	complete := src.Archive.Select(src.Filter)
	if len(all) == 0 {
		return "", fmt.Errorf("no matches in the current selection")
	}

	games := 0
	teams := map[string]bool{}
	players := map[string]bool{}
	labels := map[string]bool{}
	unresolved := map[string]bool{}
	var iprs []float64
	for _, m := range complete {
		for _, side := range []pinball.Side{pinball.Home, pinball.Away} {
			team := m.Team(side)
			if team.Key != "" {
				teams[team.Key] = true
			}
			for _, p := range team.Lineup {
				players[p.Key] = true
			}
			if ipr, err := team.AverageIPR(); err == nil {
				iprs = append(iprs, ipr)
			}
		}
		for _, label := range m.MachineLabels() {
			labels[label] = true
			if !src.Aliases.Resolved(label) {
				unresolved[label] = true
			}
		}
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				if r.Games[i].Done {
					games++
				}
			}
		}
	}

	set := machineAccumulators(src, src.Filter)
	deep := 0
	for _, key := range set.Keys() {
		if acc, _ := set.Lookup(key); acc.Games >= pinball.Config.MinGamesForStats {
			deep++
		}
	}

	var b strings.Builder
	b.WriteString("# Predictor Feasibility Audit\n\n")
	b.WriteString("This audit checks whether the archive could support outcome prediction. It does not build or fit anything.\n\n")

	b.WriteString("## Volume\n\n")
	b.WriteString(fmt.Sprintf("- Matches in scope: %d (%d complete)\n", len(all), len(complete)))
	b.WriteString(fmt.Sprintf("- Counted games: %d\n", games))
	b.WriteString(fmt.Sprintf("- Teams seen: %d, players seen: %d\n", len(teams), len(players)))

	b.WriteString("\n## Machine Coverage\n\n")
	b.WriteString(fmt.Sprintf("- Distinct machines: %d, of which %d have at least %d games\n",
		set.Len(), deep, pinball.Config.MinGamesForStats))
	b.WriteString(fmt.Sprintf("- Raw labels seen: %d, unresolved: %d\n", len(labels), len(unresolved)))
	if len(unresolved) > 0 {
		names := pinball.SortedKeys(unresolved)
		b.WriteString(fmt.Sprintf("- Unresolved labels fragment per-machine history: %s\n",
			strings.Join(names, ", ")))
	}

	if len(iprs) > 1 {
		sort.Float64s(iprs)
		b.WriteString("\n## Lineup Strength Spread\n\n")
		b.WriteString(fmt.Sprintf("- Lineup average IPR ranges %.2f to %.2f across %d lineups\n",
			iprs[0], iprs[len(iprs)-1], len(iprs)))
		if iprs[len(iprs)-1]-iprs[0] < 0.5 {
			b.WriteString("- Spread under half a rating point, so IPR alone would separate teams poorly\n")
		}
	}

	b.WriteString("\n## Verdict\n\n")
	switch {
	case games < 100:
		b.WriteString("Too few counted games for anything beyond descriptive tables.\n")
	case len(unresolved) > 0:
		b.WriteString("Volume is workable, but unresolved machine labels must be aliased first or per-machine features will double count.\n")
	default:
		b.WriteString("Volume and label hygiene are adequate. The missing piece is any out-of-sample season to validate against.\n")
	}
	return b.String(), nil
}
