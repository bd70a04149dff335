package pinball

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StateComplete is the archive's completion sentinel: only matches in this
// state are counted by season-wide reports
const StateComplete = "complete"

// Player is one lineup entry: key, display name and IPR skill rating
type Player struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	IPR  int    `json:"IPR"`
}

// TeamRef is one side of a match as recorded in the archive
type TeamRef struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Lineup []Player `json:"lineup,omitempty"`
}

// AverageIPR returns the mean skill rating of the lineup
func (t *TeamRef) AverageIPR() (float64, error) {
	ratings := make([]int, 0, len(t.Lineup))
	for _, p := range t.Lineup {
		ratings = append(ratings, p.IPR)
	}
	return Mean(ratings)
}

// VenueRef is the venue block of a match record
type VenueRef struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Machines []string `json:"machines,omitempty"`
}

// Game is a single machine played within a round. Player, score and points
// fields are indexed by position 1..4; singles rounds only populate
// positions 1 and 2. A position with an empty player key is absent.
type Game struct {
	Machine    string `json:"machine"`
	Done       bool   `json:"done"`
	Player1    string `json:"player_1,omitempty"`
	Player2    string `json:"player_2,omitempty"`
	Player3    string `json:"player_3,omitempty"`
	Player4    string `json:"player_4,omitempty"`
	Score1     int    `json:"score_1,omitempty"`
	Score2     int    `json:"score_2,omitempty"`
	Score3     int    `json:"score_3,omitempty"`
	Score4     int    `json:"score_4,omitempty"`
	Points1    int    `json:"points_1,omitempty"`
	Points2    int    `json:"points_2,omitempty"`
	Points3    int    `json:"points_3,omitempty"`
	Points4    int    `json:"points_4,omitempty"`
	HomePoints int    `json:"home_points"`
	AwayPoints int    `json:"away_points"`
}

// Player returns the player key at the given position, empty when absent
func (g *Game) Player(position int) string {
	switch position {
	case 1:
		return g.Player1
	case 2:
		return g.Player2
	case 3:
		return g.Player3
	case 4:
		return g.Player4
	default:
		return ""
	}
}

// Score returns the raw score at the given position
func (g *Game) Score(position int) int {
	switch position {
	case 1:
		return g.Score1
	case 2:
		return g.Score2
	case 3:
		return g.Score3
	case 4:
		return g.Score4
	default:
		return 0
	}
}

// Points returns the per-position points at the given position
func (g *Game) Points(position int) int {
	switch position {
	case 1:
		return g.Points1
	case 2:
		return g.Points2
	case 3:
		return g.Points3
	case 4:
		return g.Points4
	default:
		return 0
	}
}

// HasPositions reports whether every one of the given positions is
// occupied. Aggregation uses this to skip games with missing position
// fields instead of attributing phantom zero scores.
func (g *Game) HasPositions(positions []int) bool {
	for _, p := range positions {
		if g.Player(p) == "" {
			return false
		}
	}
	return true
}

// Round is one round of a match: round number 1..4 and its games
type Round struct {
	N     int    `json:"n"`
	Games []Game `json:"games"`
}

// Mode returns the round's player-count mode
func (r *Round) Mode() (RoundMode, error) {
	return ModeOf(r.N)
}

// Match is one archive record
type Match struct {
	Key    string   `json:"key"`
	State  string   `json:"state"`
	Home   TeamRef  `json:"home"`
	Away   TeamRef  `json:"away"`
	Venue  VenueRef `json:"venue"`
	Rounds []Round  `json:"rounds"`
}

/**
* ParseMatch decodes a single archive record.
* A record that cannot be decoded, or that carries no match key, is
* malformed: the archive loader fails the whole load rather than limping on
* with partial data. Anomalies WITHIN a decoded record (odd round numbers,
* missing positions) are the aggregation layer's business and are skipped
* per game there.
 */
func ParseMatch(data []byte) (*Match, error) {
	var m Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse match record: %w", err)
	}
	m.Key = strings.TrimSpace(m.Key)
	if m.Key == "" {
		return nil, fmt.Errorf("match record has no key")
	}
	return &m, nil
}

// ParseMatchFromString decodes a single archive record from a string
func ParseMatchFromString(data string) (*Match, error) {
	return ParseMatch([]byte(data))
}

// IsComplete reports whether season-wide reports may count this match
func (m *Match) IsComplete() bool {
	return m.State == StateComplete
}

// Team returns the given side's team block
func (m *Match) Team(side Side) *TeamRef {
	if side == Home {
		return &m.Home
	}
	return &m.Away
}

// SideOf returns which side the given team key plays in this match
func (m *Match) SideOf(teamKey string) (Side, bool) {
	switch teamKey {
	case m.Home.Key:
		return Home, true
	case m.Away.Key:
		return Away, true
	default:
		return 0, false
	}
}

// HasTeam reports whether the given team key plays in this match
func (m *Match) HasTeam(teamKey string) bool {
	_, ok := m.SideOf(teamKey)
	return ok
}

// SortedRounds returns the rounds ordered by round number
func (m *Match) SortedRounds() []Round {
	out := make([]Round, len(m.Rounds))
	copy(out, m.Rounds)
	sort.Slice(out, func(i, j int) bool {
		return out[i].N < out[j].N
	})
	return out
}

// MachineLabels returns the distinct raw machine labels in this match, in
// first-seen order
func (m *Match) MachineLabels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range m.Rounds {
		for _, g := range r.Games {
			if g.Machine == "" || seen[g.Machine] {
				continue
			}
			seen[g.Machine] = true
			out = append(out, g.Machine)
		}
	}
	return out
}
