package pinball

import (
	"sort"

	"github.com/richard-senior/pinstats/internal/logger"
)

// Accumulator is the running aggregate for one key (a machine, venue, team
// or player). It grows monotonically during a single report run and is
// never persisted. Re-folding the same record double-counts: visiting each
// record exactly once is the caller's job, not the accumulator's.
type Accumulator struct {
	Key             string
	Games           int
	HomePoints      int   // per-position points credited to the home side
	AwayPoints      int   // per-position points credited to the away side
	Scores          []int // raw scores in fold order
	EarnedPoints    int   // game-level points credited to this key's side
	AvailablePoints int   // game-level points at stake across counted games
}

// Add records one attributed position tuple: points join the side's total,
// the raw score joins the score list
func (a *Accumulator) Add(side Side, score, points int) {
	if side == Home {
		a.HomePoints += points
	} else {
		a.AwayPoints += points
	}
	a.Scores = append(a.Scores, score)
}

// SidePoints returns the per-position point total for one side
func (a *Accumulator) SidePoints(side Side) int {
	if side == Home {
		return a.HomePoints
	}
	return a.AwayPoints
}

// TotalPoints returns the per-position point total across both sides
func (a *Accumulator) TotalPoints() int {
	return a.HomePoints + a.AwayPoints
}

// POPS returns the points-earned percentage of points available, with the
// Ratio zero conventions
func (a *Accumulator) POPS() float64 {
	return 100 * Ratio(a.EarnedPoints, a.AvailablePoints)
}

/**
* AccumulateMachine folds one completed game, both sides, into a
* machine-keyed accumulator. Games that are not done are ignored; games
* with a round outside 1..4 or with missing positions are skipped so one
* corrupt record cannot sink a whole season report. Returns whether the
* game was counted.
 */
func (a *Accumulator) AccumulateMachine(g *Game, round int) bool {
	if !g.Done {
		return false
	}
	present, err := PresentPositions(round)
	if err != nil {
		logger.Warn("skipping game on", g.Machine, ":", err)
		return false
	}
	if !g.HasPositions(present) {
		logger.Warn("skipping game on", g.Machine, ": missing positions in round", round)
		return false
	}
	for _, side := range []Side{Home, Away} {
		positions, _ := PositionsFor(round, side)
		for _, pos := range positions {
			a.Add(side, g.Score(pos), g.Points(pos))
		}
	}
	a.Games++
	return true
}

/**
* AccumulateTeam folds one side of one completed game into a team-keyed
* accumulator: only the positions attributed to that side contribute, so a
* team's score list never contains opponent scores. Game-level points feed
* the POPS fields. Returns whether the game was counted.
 */
func (a *Accumulator) AccumulateTeam(g *Game, round int, side Side) bool {
	if !g.Done {
		return false
	}
	positions, err := PositionsFor(round, side)
	if err != nil {
		logger.Warn("skipping game on", g.Machine, ":", err)
		return false
	}
	if !g.HasPositions(positions) {
		logger.Warn("skipping game on", g.Machine, ": missing positions in round", round)
		return false
	}
	for _, pos := range positions {
		a.Add(side, g.Score(pos), g.Points(pos))
	}
	if side == Home {
		a.EarnedPoints += g.HomePoints
	} else {
		a.EarnedPoints += g.AwayPoints
	}
	a.AvailablePoints += g.HomePoints + g.AwayPoints
	a.Games++
	return true
}

// Accumulators is a set of key-scoped accumulators. Distinct keys never
// share state. Keys remember first-insertion order.
type Accumulators struct {
	byKey map[string]*Accumulator
	order []string
}

func NewAccumulators() *Accumulators {
	return &Accumulators{byKey: make(map[string]*Accumulator)}
}

// Get returns the accumulator for key, creating it on first use
func (s *Accumulators) Get(key string) *Accumulator {
	if a, ok := s.byKey[key]; ok {
		return a
	}
	a := &Accumulator{Key: key}
	s.byKey[key] = a
	s.order = append(s.order, key)
	return a
}

// Lookup returns the accumulator for key if one exists
func (s *Accumulators) Lookup(key string) (*Accumulator, bool) {
	a, ok := s.byKey[key]
	return a, ok
}

// Keys returns the keys in first-insertion order
func (s *Accumulators) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SortedKeys returns the keys lexically sorted, for deterministic output
func (s *Accumulators) SortedKeys() []string {
	out := s.Keys()
	sort.Strings(out)
	return out
}

// Len returns the number of keys
func (s *Accumulators) Len() int {
	return len(s.byKey)
}

/**
* AccumulatePlayers folds every present position of one completed game into
* per-player accumulators keyed by player key. Each player's points also
* feed their EarnedPoints so per-player points-per-game falls out of the
* same structure.
 */
func AccumulatePlayers(set *Accumulators, g *Game, round int) {
	if !g.Done {
		return
	}
	present, err := PresentPositions(round)
	if err != nil {
		logger.Warn("skipping game on", g.Machine, ":", err)
		return
	}
	for _, pos := range present {
		key := g.Player(pos)
		if key == "" {
			continue
		}
		side, err := SideOfPosition(round, pos)
		if err != nil {
			continue
		}
		a := set.Get(key)
		a.Add(side, g.Score(pos), g.Points(pos))
		a.EarnedPoints += g.Points(pos)
		a.Games++
	}
}
