package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type advantageRow struct {
	Machine    string `md:"Machine"`
	Games      int    `md:"Games,right"`
	HomePoints int    `md:"Home pts,right"`
	AwayPoints int    `md:"Away pts,right"`
	Advantage  string `md:"Home/Away,right"`

	ratio float64
}

/**
* AdvantageReport renders per-machine home/away point-advantage ratios.
* A machine where the away side never took a point shows the unbounded
* advantage symbol rather than an error or a fake number; that convention
* comes with the data.
 */
func AdvantageReport(src *Source, venueKey string) (string, error) {
	f := src.Filter
	if venueKey != "" {
		f.Venue = venueKey
	}
	set := machineAccumulators(src, f)

	var rows []advantageRow
	for _, key := range set.SortedKeys() {
		acc, _ := set.Lookup(key)
		if acc.Games < pinball.Config.MinGamesForStats {
			continue
		}
		ratio := pinball.Ratio(acc.HomePoints, acc.AwayPoints)
		rows = append(rows, advantageRow{
			Machine:    src.Aliases.DisplayName(key),
			Games:      acc.Games,
			HomePoints: acc.HomePoints,
			AwayPoints: acc.AwayPoints,
			Advantage:  pinball.FormatRatio(ratio),
			ratio:      ratio,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ratio != rows[j].ratio {
			return rows[i].ratio > rows[j].ratio
		}
		return rows[i].Machine < rows[j].Machine
	})

	var b strings.Builder
	b.WriteString("# Home Advantage By Machine\n\n")
	if venueKey != "" {
		b.WriteString(fmt.Sprintf("Venue: %s\n\n", venueHeading(src, venueKey)))
	}
	b.WriteString("Ratio of points taken by the home side to points taken by the away side,\n")
	b.WriteString("per machine, highest advantage first.\n\n")

	if len(rows) == 0 {
		b.WriteString("No machine has enough counted games yet.\n")
		return b.String(), nil
	}
	table, err := MarkdownTable(rows)
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	return b.String(), nil
}
