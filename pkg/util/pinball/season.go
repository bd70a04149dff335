package pinball

import (
	"fmt"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util"
)

// MatchKey is the parsed form of an archive match key, e.g.
// "mnp-21-7-DTP-JMF": league, season, week, away team, home team
type MatchKey struct {
	League string
	Season int
	Week   int
	Away   string
	Home   string
}

/**
* ParseMatchKey splits an archive match key into its parts.
* Keys are '<league>-<season>-<week>-<away>-<home>'. Season and week are
* numeric; team keys are the league's short team codes. Anything else is an
* error, which season/week filters treat as "does not match".
 */
func ParseMatchKey(key string) (*MatchKey, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 5 {
		return nil, fmt.Errorf("match key %q does not have 5 parts", key)
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("match key %q has an empty part at %d", key, i)
		}
	}
	season, err := util.GetAsInteger(parts[1])
	if err != nil {
		return nil, fmt.Errorf("match key %q has a non-numeric season: %w", key, err)
	}
	week, err := util.GetAsInteger(parts[2])
	if err != nil {
		return nil, fmt.Errorf("match key %q has a non-numeric week: %w", key, err)
	}
	return &MatchKey{
		League: parts[0],
		Season: season,
		Week:   week,
		Away:   parts[3],
		Home:   parts[4],
	}, nil
}

// String reassembles the key in archive form
func (k *MatchKey) String() string {
	return fmt.Sprintf("%s-%d-%d-%s-%s", k.League, k.Season, k.Week, k.Away, k.Home)
}

// SeasonLabel renders the season for report headings
func (k *MatchKey) SeasonLabel() string {
	return fmt.Sprintf("%s season %d", strings.ToUpper(k.League), k.Season)
}
