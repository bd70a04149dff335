package pinball

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Statistics primitives shared by every report. All of them are pure
// functions over int slices; none of them mutate their input.

/**
* Returns the arithmetic mean of the given scores.
* An empty input is an error, never a silent zero.
 */
func Mean(scores []int) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("cannot take the mean of no scores")
	}
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	return sum / float64(len(scores)), nil
}

/**
* Returns the median of the given scores.
* Must agree exactly with Percentile(scores, 0.5).
 */
func Median(scores []int) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("cannot take the median of no scores")
	}
	sorted := sortedCopy(scores)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2]), nil
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2.0, nil
}

// Min returns the smallest score. Empty input is an error.
func Min(scores []int) (int, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("cannot take the min of no scores")
	}
	out := scores[0]
	for _, s := range scores[1:] {
		if s < out {
			out = s
		}
	}
	return out, nil
}

// Max returns the largest score. Empty input is an error.
func Max(scores []int) (int, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("cannot take the max of no scores")
	}
	out := scores[0]
	for _, s := range scores[1:] {
		if s > out {
			out = s
		}
	}
	return out, nil
}

/**
* Percentile returns the p-th percentile (p in [0,1]) of the given scores
* using linear interpolation between closest ranks:
*
*   idx = (n-1) * p
*   lower = floor(idx), upper = lower + 1
*   upper >= n        -> scores[lower]
*   otherwise         -> scores[lower] + (idx-lower) * (scores[upper]-scores[lower])
*
* Every percentile in the codebase must come from this one function.
 */
func Percentile(scores []int, p float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("cannot take a percentile of no scores")
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("percentile %f is outside [0,1]", p)
	}
	sorted := sortedCopy(scores)
	n := len(sorted)
	idx := float64(n-1) * p
	lower := int(math.Floor(idx))
	upper := lower + 1
	if upper >= n {
		return float64(sorted[lower]), nil
	}
	return float64(sorted[lower]) + (idx-float64(lower))*float64(sorted[upper]-sorted[lower]), nil
}

/**
* Ratio divides a by b with the league's zero conventions:
* b == 0 and a > 0 yields +Inf (a machine where the away side never scored
* a point has unbounded home advantage), and 0/0 yields 1.0 (no evidence
* either way reads as parity). Never an error.
 */
func Ratio(a, b int) float64 {
	if b == 0 {
		if a > 0 {
			return math.Inf(1)
		}
		return 1.0
	}
	return float64(a) / float64(b)
}

// FormatRatio renders a Ratio value for report output, using the infinity
// symbol for the unbounded case
func FormatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "∞"
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

func sortedCopy(scores []int) []int {
	out := make([]int, len(scores))
	copy(out, scores)
	sort.Ints(out)
	return out
}
