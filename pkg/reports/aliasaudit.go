package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type suggestion struct {
	key   string
	score float64
}

/**
* AliasAuditReport finds machine labels the alias table cannot resolve and
* suggests likely homes for them by edit distance. It also flags machines the
* reference file knows that the alias table does not, so the two stay in
* step.
 */
func AliasAuditReport(src *Source) (string, error) {
	f := src.Filter
	f.CompleteOnly = false

	seen := map[string]int{}
	for _, m := range src.Archive.Select(f) {
		for _, label := range m.MachineLabels() {
			if !src.Aliases.Resolved(label) {
				seen[label]++
			}
		}
	}

	var b strings.Builder
	b.WriteString("# Alias Audit\n\n")

	if len(seen) == 0 {
		b.WriteString("Every machine label in the selection resolves to a known machine.\n")
	} else {
		labels := pinball.SortedKeys(seen)
		sort.Slice(labels, func(i, j int) bool {
			if seen[labels[i]] != seen[labels[j]] {
				return seen[labels[i]] > seen[labels[j]]
			}
			return labels[i] < labels[j]
		})
		b.WriteString(fmt.Sprintf("%d labels do not resolve. Each falls back to its own key, splitting that machine's history.\n\n", len(labels)))
		for _, label := range labels {
			b.WriteString(fmt.Sprintf("- %q seen %d times", label, seen[label]))
			if hints := suggestKeys(src.Aliases, label); len(hints) > 0 {
				b.WriteString(fmt.Sprintf(", closest: %s", strings.Join(hints, ", ")))
			}
			b.WriteString("\n")
		}
	}

	var missing []string
	for _, key := range pinball.SortedKeys(src.Machines) {
		if _, ok := src.Aliases.Entry(key); !ok {
			missing = append(missing, fmt.Sprintf("%s (%s)", key, src.Machines[key].Name))
		}
	}
	if len(missing) > 0 {
		b.WriteString("\n## In Machine Reference, Not In Alias Table\n\n")
		for _, line := range missing {
			b.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}
	return b.String(), nil
}

// suggestKeys ranks alias table entries by edit distance score against an
// unresolved label, best first, capped by configuration.
func suggestKeys(aliases *pinball.AliasTable, label string) []string {
	limit := pinball.Config.FuzzySuggestMax
	if limit == 0 {
		return nil
	}
	var ranked []suggestion
	for _, key := range aliases.Keys() {
		score := util.FuzzyMatchScore(strings.ToLower(label), strings.ToLower(key))
		if name := aliases.DisplayName(key); name != key {
			if s := util.FuzzyMatchScore(strings.ToLower(label), strings.ToLower(name)); s > score {
				score = s
			}
		}
		if score >= 0.5 {
			ranked = append(ranked, suggestion{key: key, score: score})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].key < ranked[j].key
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, fmt.Sprintf("%s (%.2f)", s.key, s.score))
	}
	return out
}
