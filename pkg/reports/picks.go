package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/internal/logger"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type pickRow struct {
	Machine string `md:"Machine"`
	Picks   int    `md:"Picks,right"`
	Singles int    `md:"Singles,right"`
	Doubles int    `md:"Doubles,right"`
}

/**
* PicksReport renders pick-frequency tables: which machines get chosen when
* a side holds the pick. With a team key the table covers only rounds that
* team picked; without one it covers every pick in the selected matches.
*
* Pick attribution is not score attribution. The picking side for a round
* comes from PickingSide alone; which positions a side occupies never
* enters into it.
 */
func PicksReport(src *Source, teamKey string) (string, error) {
	f := src.Filter
	if teamKey != "" {
		f.Team = teamKey
	}

	picks := make(map[string]*pickRow)
	for _, m := range src.Archive.Select(f) {
		var teamSide pinball.Side
		if teamKey != "" {
			side, ok := m.SideOf(teamKey)
			if !ok {
				continue
			}
			teamSide = side
		}
		for _, r := range m.SortedRounds() {
			picker, err := pinball.PickingSide(r.N)
			if err != nil {
				logger.Warn("skipping round in", m.Key, ":", err)
				continue
			}
			if teamKey != "" && picker != teamSide {
				continue
			}
			mode, _ := pinball.ModeOf(r.N)
			for i := range r.Games {
				g := &r.Games[i]
				if !g.Done {
					continue
				}
				key, name := src.Aliases.Resolve(g.Machine)
				row, ok := picks[key]
				if !ok {
					row = &pickRow{Machine: name}
					picks[key] = row
				}
				row.Picks++
				if mode == pinball.Singles {
					row.Singles++
				} else {
					row.Doubles++
				}
			}
		}
	}

	rows := make([]*pickRow, 0, len(picks))
	for _, row := range picks {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Picks != rows[j].Picks {
			return rows[i].Picks > rows[j].Picks
		}
		return rows[i].Machine < rows[j].Machine
	})

	var b strings.Builder
	b.WriteString("# Pick Frequency\n\n")
	if teamKey != "" {
		b.WriteString(fmt.Sprintf("Machines chosen by %s when holding the pick (rounds 2 and 4 at home, 1 and 3 away).\n\n", teamKey))
	} else {
		b.WriteString("Machines chosen across all picks in the selected matches.\n\n")
	}

	if len(rows) == 0 {
		b.WriteString("No picks found for this selection.\n")
		return b.String(), nil
	}
	table, err := MarkdownTable(rows)
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	return b.String(), nil
}
