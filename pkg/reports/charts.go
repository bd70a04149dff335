package reports

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/richard-senior/pinstats/internal/logger"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

/**
* ScoreHistogram renders a PNG bar chart of a score distribution, bucketed
* over the observed range.
 */
func ScoreHistogram(title string, scores []int) ([]byte, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("no scores to chart")
	}
	low, _ := pinball.Min(scores)
	high, _ := pinball.Max(scores)

	buckets := pinball.Config.ChartBuckets
	width := (high - low) / buckets
	if width == 0 {
		width = 1
	}
	counts := make([]int, buckets)
	for _, s := range scores {
		i := (s - low) / width
		if i >= buckets {
			i = buckets - 1
		}
		counts[i]++
	}

	bars := make([]chart.Value, 0, buckets)
	for i, c := range counts {
		bars = append(bars, chart.Value{
			Label: shortScore(low + i*width),
			Value: float64(c),
		})
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      pinball.Config.ChartWidth,
		Height:     pinball.Config.ChartHeight,
		BarWidth:   pinball.Config.ChartWidth / (buckets + 2),
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

/**
* MachineCharts renders one histogram per machine with enough counted games,
* keyed by a slug suitable for a file name.
 */
func MachineCharts(src *Source, venueKey string) (map[string][]byte, error) {
	f := src.Filter
	f.Venue = venueKey
	set := machineAccumulators(src, f)

	out := map[string][]byte{}
	for _, key := range set.SortedKeys() {
		acc, _ := set.Lookup(key)
		if acc.Games < pinball.Config.MinGamesForStats {
			continue
		}
		name := src.Aliases.DisplayName(key)
		png, err := ScoreHistogram(fmt.Sprintf("%s scores (%d games)", name, acc.Games), acc.Scores)
		if err != nil {
			logger.Warn("skipping chart for", name, ":", err)
			continue
		}
		out[Slug(name)+".png"] = png
	}
	return out, nil
}

// shortScore compacts pinball scores for bucket labels, 1.2M instead of
// 1200000
func shortScore(s int) string {
	switch {
	case s >= 1000000:
		return fmt.Sprintf("%.1fM", float64(s)/1000000)
	case s >= 1000:
		return fmt.Sprintf("%.0fK", float64(s)/1000)
	default:
		return fmt.Sprintf("%d", s)
	}
}
