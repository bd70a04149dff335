package pinball

import "fmt"

// Side identifies which team a position, point total or pick belongs to
type Side int

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	if s == Home {
		return "home"
	}
	return "away"
}

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == Home {
		return Away
	}
	return Home
}

// RoundMode is the player-count mode of a round
type RoundMode int

const (
	Doubles RoundMode = iota // 4-player rounds (1 and 4)
	Singles                  // 2-player rounds (2 and 3)
)

func (m RoundMode) String() string {
	if m == Doubles {
		return "doubles"
	}
	return "singles"
}

const (
	FirstRound = 1
	LastRound  = 4
)

// homePositions is the league's position convention per round.
// This is a fixed table, not a formula: the convention inverts between
// doubles and singles rounds and between home and away.
//
//	round 1 doubles: home {2,4}  away {1,3}
//	round 2 singles: home {1}    away {2}
//	round 3 singles: home {2}    away {1}
//	round 4 doubles: home {1,3}  away {2,4}
var homePositions = map[int][]int{
	1: {2, 4},
	2: {1},
	3: {2},
	4: {1, 3},
}

// ModeOf returns the player-count mode for the given round
func ModeOf(round int) (RoundMode, error) {
	switch round {
	case 1, 4:
		return Doubles, nil
	case 2, 3:
		return Singles, nil
	default:
		return 0, fmt.Errorf("round %d is outside 1..4", round)
	}
}

// PresentPositions returns the positions that exist in the given round:
// {1,2,3,4} for doubles rounds, {1,2} for singles rounds
func PresentPositions(round int) ([]int, error) {
	mode, err := ModeOf(round)
	if err != nil {
		return nil, err
	}
	if mode == Doubles {
		return []int{1, 2, 3, 4}, nil
	}
	return []int{1, 2}, nil
}

// PositionsFor returns the player positions occupied by the given side in
// the given round. The away set is always the complement of the home set
// within PresentPositions(round).
func PositionsFor(round int, side Side) ([]int, error) {
	home, ok := homePositions[round]
	if !ok {
		return nil, fmt.Errorf("round %d is outside 1..4", round)
	}
	if side == Home {
		out := make([]int, len(home))
		copy(out, home)
		return out, nil
	}
	present, err := PresentPositions(round)
	if err != nil {
		return nil, err
	}
	isHome := make(map[int]bool, len(home))
	for _, p := range home {
		isHome[p] = true
	}
	var out []int
	for _, p := range present {
		if !isHome[p] {
			out = append(out, p)
		}
	}
	return out, nil
}

// SideOfPosition returns which side the given position belongs to in the
// given round
func SideOfPosition(round, position int) (Side, error) {
	present, err := PresentPositions(round)
	if err != nil {
		return 0, err
	}
	found := false
	for _, p := range present {
		if p == position {
			found = true
			break
		}
	}
	if !found {
		return 0, fmt.Errorf("position %d is not present in round %d", position, round)
	}
	for _, p := range homePositions[round] {
		if p == position {
			return Home, nil
		}
	}
	return Away, nil
}

// PickingSide returns which side chose the machine for the given round.
// The side playing at its own venue picks rounds 2 and 4, the visiting
// side picks rounds 1 and 3. Not the same question as PositionsFor: who
// picked a machine and who occupies which scoring position are unrelated.
func PickingSide(round int) (Side, error) {
	switch round {
	case 1, 3:
		return Away, nil
	case 2, 4:
		return Home, nil
	default:
		return 0, fmt.Errorf("round %d is outside 1..4", round)
	}
}

// PicksInRound reports whether the given side chose the machine in the
// given round
func PicksInRound(round int, side Side) (bool, error) {
	picker, err := PickingSide(round)
	if err != nil {
		return false, err
	}
	return picker == side, nil
}
