package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type venueMachineRow struct {
	Machine  string  `md:"Machine"`
	Declared bool    `md:"Declared"`
	Plays    int     `md:"Plays,right"`
	Worst    int     `md:"Worst,right"`
	Median   float64 `md:"Median,right"`
	Best     int     `md:"Best,right"`
}

/**
* VenueReport reconciles a venue's declared machine list against what the
* selected matches actually show being played there, with score spreads for
* everything observed.
 */
func VenueReport(src *Source, venueKey string) (string, error) {
	if venueKey == "" {
		return "", fmt.Errorf("venue report needs a venue key")
	}
	set := machineAccumulators(src, venueFilter(src, venueKey))

	declared := map[string]bool{}
	info, known := src.Venues[venueKey]
	for _, key := range info.Machines {
		declared[key] = true
	}
	if !known && set.Len() == 0 {
		return "", fmt.Errorf("venue %s is not in the reference file and has no matches in this selection", venueKey)
	}

	var rows []venueMachineRow
	observed := map[string]bool{}
	for _, key := range set.SortedKeys() {
		acc, _ := set.Lookup(key)
		if acc.Games == 0 {
			continue
		}
		observed[key] = true
		worst, _ := pinball.Min(acc.Scores)
		median, _ := pinball.Median(acc.Scores)
		best, _ := pinball.Max(acc.Scores)
		rows = append(rows, venueMachineRow{
			Machine:  src.Aliases.DisplayName(key),
			Declared: declared[key],
			Plays:    acc.Games,
			Worst:    worst,
			Median:   median,
			Best:     best,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Machine < rows[j].Machine })

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Venue Report: %s\n\n", venueHeading(src, venueKey)))
	if known && info.HomeTeam != "" {
		b.WriteString(fmt.Sprintf("Home team: %s\n\n", info.HomeTeam))
	}

	if len(rows) > 0 {
		table, err := MarkdownTable(rows)
		if err != nil {
			return "", err
		}
		b.WriteString(table)
	} else {
		b.WriteString("No completed games at this venue in the current selection.\n")
	}

	var missing []string
	for _, key := range pinball.SortedKeys(declared) {
		if !observed[key] {
			missing = append(missing, src.Aliases.DisplayName(key))
		}
	}
	if len(missing) > 0 {
		b.WriteString("\n## Declared But Never Played\n\n")
		for _, name := range missing {
			b.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}

	var undeclared []string
	for key := range observed {
		if !declared[key] {
			undeclared = append(undeclared, src.Aliases.DisplayName(key))
		}
	}
	if known && len(undeclared) > 0 {
		sort.Strings(undeclared)
		b.WriteString("\n## Played But Not Declared\n\n")
		for _, name := range undeclared {
			b.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}
	return b.String(), nil
}

func venueFilter(src *Source, venueKey string) pinball.Filter {
	f := src.Filter
	f.Venue = venueKey
	return f
}
