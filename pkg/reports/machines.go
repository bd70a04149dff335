package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type machineRow struct {
	Machine string  `md:"Machine"`
	Games   int     `md:"Games,right"`
	Low     int     `md:"Low,right"`
	P25     float64 `md:"P25,right"`
	Median  float64 `md:"Median,right"`
	Mean    float64 `md:"Mean,right"`
	P75     float64 `md:"P75,right"`
	P90     float64 `md:"P90,right"`
	High    int     `md:"High,right"`
}

/**
* MachinesReport renders per-machine score distributions, league-wide or
* for a single venue. Machines with fewer counted games than the configured
* floor are listed below the table instead of in it; their percentiles
* would be noise.
 */
func MachinesReport(src *Source, venueKey string) (string, error) {
	f := src.Filter
	if venueKey != "" {
		f.Venue = venueKey
	}
	set := machineAccumulators(src, f)

	var rows []machineRow
	var thin []string
	counted := 0
	for _, key := range set.SortedKeys() {
		acc, _ := set.Lookup(key)
		if acc.Games == 0 {
			continue
		}
		counted += acc.Games
		name := src.Aliases.DisplayName(key)
		if acc.Games < pinball.Config.MinGamesForStats {
			thin = append(thin, fmt.Sprintf("%s (%d)", name, acc.Games))
			continue
		}
		low, _ := pinball.Min(acc.Scores)
		p25, _ := pinball.Percentile(acc.Scores, 0.25)
		median, _ := pinball.Median(acc.Scores)
		mean, _ := pinball.Mean(acc.Scores)
		p75, _ := pinball.Percentile(acc.Scores, 0.75)
		p90, _ := pinball.Percentile(acc.Scores, 0.9)
		high, _ := pinball.Max(acc.Scores)
		rows = append(rows, machineRow{
			Machine: name,
			Games:   acc.Games,
			Low:     low,
			P25:     p25,
			Median:  median,
			Mean:    mean,
			P75:     p75,
			P90:     p90,
			High:    high,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Machine < rows[j].Machine })

	var b strings.Builder
	b.WriteString("# Machine Score Distributions\n\n")
	if venueKey != "" {
		b.WriteString(fmt.Sprintf("Venue: %s\n\n", venueHeading(src, venueKey)))
	}
	b.WriteString(fmt.Sprintf("%d machines over %d counted games.\n\n", len(rows)+len(thin), counted))

	if len(rows) > 0 {
		table, err := MarkdownTable(rows)
		if err != nil {
			return "", err
		}
		b.WriteString(table)
	} else {
		b.WriteString("No machine has enough counted games yet.\n")
	}

	if len(thin) > 0 {
		b.WriteString(fmt.Sprintf("\nFewer than %d counted games: %s.\n",
			pinball.Config.MinGamesForStats, strings.Join(thin, ", ")))
	}
	return b.String(), nil
}

// venueHeading names a venue for report titles, using the reference file
// when it knows the key
func venueHeading(src *Source, venueKey string) string {
	if v, ok := src.Venues[venueKey]; ok && v.Name != "" {
		return fmt.Sprintf("%s (%s)", v.Name, venueKey)
	}
	return venueKey
}
