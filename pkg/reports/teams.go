package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type teamSummaryRow struct {
	Team   string  `md:"Team"`
	Games  int     `md:"Games,right"`
	Points int     `md:"Points,right"`
	POPS   float64 `md:"POPS %,right"`
	Median float64 `md:"Median score,right"`
}

/**
* TeamComparisonReport renders a head-to-head comparison of two teams:
* season summaries, their meetings in the selected matches, and medians on
* the machines both teams have played.
 */
func TeamComparisonReport(src *Source, teamA, teamB string) (string, error) {
	if teamA == "" || teamB == "" {
		return "", fmt.Errorf("team comparison needs two team keys")
	}
	accA := teamAccumulator(src, teamA)
	accB := teamAccumulator(src, teamB)
	if accA.Games == 0 && accB.Games == 0 {
		return "", fmt.Errorf("neither %s nor %s has counted games in this selection", teamA, teamB)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Team Comparison: %s vs %s\n\n", teamA, teamB))

	rows := []teamSummaryRow{summaryRow(teamA, accA), summaryRow(teamB, accB)}
	table, err := MarkdownTable(rows)
	if err != nil {
		return "", err
	}
	b.WriteString(table)

	writeMeetings(&b, src, teamA, teamB)
	writeSharedMachines(&b, src, teamA, teamB)
	writeLineups(&b, src, teamA, teamB)
	return b.String(), nil
}

func summaryRow(key string, acc *pinball.Accumulator) teamSummaryRow {
	row := teamSummaryRow{
		Team:   key,
		Games:  acc.Games,
		Points: acc.EarnedPoints,
		POPS:   acc.POPS(),
	}
	if median, err := pinball.Median(acc.Scores); err == nil {
		row.Median = median
	}
	return row
}

// writeMeetings summarizes the two teams' direct meetings by game-level
// points
func writeMeetings(b *strings.Builder, src *Source, teamA, teamB string) {
	f := src.Filter
	f.Team = teamA
	winsA, winsB, ties := 0, 0, 0
	var lines []string
	for _, m := range src.Archive.Select(f) {
		if !m.HasTeam(teamB) {
			continue
		}
		sideA, _ := m.SideOf(teamA)
		var pointsA, pointsB int
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				g := &r.Games[i]
				if !g.Done {
					continue
				}
				if sideA == pinball.Home {
					pointsA += g.HomePoints
					pointsB += g.AwayPoints
				} else {
					pointsA += g.AwayPoints
					pointsB += g.HomePoints
				}
			}
		}
		switch {
		case pointsA > pointsB:
			winsA++
		case pointsB > pointsA:
			winsB++
		default:
			ties++
		}
		lines = append(lines, fmt.Sprintf("- %s: %s %d, %s %d", m.Key, teamA, pointsA, teamB, pointsB))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n## Meetings\n\n%s leads %d-%d", teamA, winsA, winsB))
	if ties > 0 {
		b.WriteString(fmt.Sprintf(" with %d tied", ties))
	}
	b.WriteString(".\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
}

// writeSharedMachines compares medians on machines both teams have played.
// Headers carry the team keys, so this table is built by hand rather than
// through the tag-driven renderer.
func writeSharedMachines(b *strings.Builder, src *Source, teamA, teamB string) {
	setA := teamMachineAccumulators(src, teamA)
	setB := teamMachineAccumulators(src, teamB)

	var keys []string
	for _, key := range setA.SortedKeys() {
		accA, _ := setA.Lookup(key)
		accB, ok := setB.Lookup(key)
		if !ok || accA.Games == 0 || accB.Games == 0 {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	b.WriteString("\n## Shared Machines\n\n")
	b.WriteString(fmt.Sprintf("| Machine | %s median | %s median | Edge |\n", teamA, teamB))
	b.WriteString("| --- | ---: | ---: | --- |\n")
	for _, key := range keys {
		accA, _ := setA.Lookup(key)
		accB, _ := setB.Lookup(key)
		medA, _ := pinball.Median(accA.Scores)
		medB, _ := pinball.Median(accB.Scores)
		edge := "even"
		if medA > medB {
			edge = teamA
		} else if medB > medA {
			edge = teamB
		}
		b.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %s |\n",
			src.Aliases.DisplayName(key), medA, medB, edge))
	}
}

// writeLineups notes the most recently seen lineup strength for each team
func writeLineups(b *strings.Builder, src *Source, teams ...string) {
	var lines []string
	for _, teamKey := range teams {
		f := src.Filter
		f.Team = teamKey
		matches := src.Archive.Select(f)
		if len(matches) == 0 {
			continue
		}
		last := matches[len(matches)-1]
		side, _ := last.SideOf(teamKey)
		team := last.Team(side)
		ipr, err := team.AverageIPR()
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: average IPR %.2f over %d players (as of %s)",
			teamKey, ipr, len(team.Lineup), last.Key))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n## Lineup Strength\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
}
