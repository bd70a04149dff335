package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type teamPopsRow struct {
	Team    string  `md:"Team"`
	Matches int     `md:"Matches,right"`
	Games   int     `md:"Games,right"`
	Points  int     `md:"Points,right"`
	POPS    float64 `md:"POPS %,right"`
}

type playerRow struct {
	Player  string  `md:"Player"`
	IPR     int     `md:"IPR,right"`
	Games   int     `md:"Games,right"`
	Points  int     `md:"Points,right"`
	PerGame float64 `md:"Pts/game,right"`
	Median  float64 `md:"Median score,right"`
}

/**
* PopsReport ranks every team in the selection by POPS, the share of
* available game points the team actually won. Given a team key it renders
* that team's roster instead, since the record does not attribute available
* points to individual players.
 */
func PopsReport(src *Source, teamKey string) (string, error) {
	if teamKey != "" {
		return playerReport(src, teamKey)
	}

	set := pinball.NewAccumulators()
	matches := map[string]int{}
	for _, m := range src.Archive.Select(src.Filter) {
		for _, side := range []pinball.Side{pinball.Home, pinball.Away} {
			team := m.Team(side)
			if team.Key == "" {
				continue
			}
			matches[team.Key]++
			acc := set.Get(team.Key)
			for _, r := range m.SortedRounds() {
				for i := range r.Games {
					acc.AccumulateTeam(&r.Games[i], r.N, side)
				}
			}
		}
	}

	var rows []teamPopsRow
	for _, key := range set.Keys() {
		acc, _ := set.Lookup(key)
		if acc.Games == 0 {
			continue
		}
		rows = append(rows, teamPopsRow{
			Team:    key,
			Matches: matches[key],
			Games:   acc.Games,
			Points:  acc.EarnedPoints,
			POPS:    acc.POPS(),
		})
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("no counted games in the current selection")
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].POPS != rows[j].POPS {
			return rows[i].POPS > rows[j].POPS
		}
		return rows[i].Team < rows[j].Team
	})

	table, err := MarkdownTable(rows)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# Team POPS\n\n")
	b.WriteString("POPS is the percentage of available game points a team won.\n\n")
	b.WriteString(table)
	return b.String(), nil
}

// playerReport folds every game a team appeared in, then keeps only the
// players its lineups name. Available points are a team-level notion, so
// players get points per game rather than POPS.
func playerReport(src *Source, teamKey string) (string, error) {
	f := src.Filter
	f.Team = teamKey

	set := pinball.NewAccumulators()
	roster := map[string]pinball.Player{}
	for _, m := range src.Archive.Select(f) {
		side, ok := m.SideOf(teamKey)
		if !ok {
			continue
		}
		for _, p := range m.Team(side).Lineup {
			roster[p.Key] = p
		}
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				pinball.AccumulatePlayers(set, &r.Games[i], r.N)
			}
		}
	}
	if len(roster) == 0 {
		return "", fmt.Errorf("no lineups found for team %s in the current selection", teamKey)
	}

	var rows []playerRow
	for key, p := range roster {
		acc, ok := set.Lookup(key)
		if !ok || acc.Games == 0 {
			continue
		}
		median, _ := pinball.Median(acc.Scores)
		rows = append(rows, playerRow{
			Player:  p.Name,
			IPR:     p.IPR,
			Games:   acc.Games,
			Points:  acc.EarnedPoints,
			PerGame: pinball.Ratio(acc.EarnedPoints, acc.Games),
			Median:  median,
		})
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("team %s has no counted games in the current selection", teamKey)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Player < rows[j].Player
	})

	table, err := MarkdownTable(rows)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Player Summary: %s\n\n", teamKey))
	b.WriteString(table)
	return b.String(), nil
}
