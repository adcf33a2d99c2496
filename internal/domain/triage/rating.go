package triage

import "math"

// Difficulty scale. Votes and averages always live in [MinRate, MaxRate].
const (
	MinRate = 1
	MaxRate = 5
)

// NotRatedLabel is shown for issues without any vote yet.
const NotRatedLabel = "Not rated yet"

var rateLabels = [...]string{
	1: "Very Easy",
	2: "Easy",
	3: "Medium",
	4: "Hard",
	5: "Very Hard",
}

// ValidRate reports whether n is a legal difficulty vote.
func ValidRate(n int) bool {
	return n >= MinRate && n <= MaxRate
}

// RateLabel maps a cached average rate to its display label. A nil rate means
// the issue has no votes yet.
func RateLabel(rate *int) string {
	if rate == nil {
		return NotRatedLabel
	}
	if !ValidRate(*rate) {
		return NotRatedLabel
	}
	return rateLabels[*rate]
}

// AverageRate computes the rounded arithmetic mean of a vote set. Rounding is
// half away from zero; with votes always positive that is plain half-up, so
// [5 5 4] averages to 5 and [5 1] to 3. Zero votes yield zero, callers only
// invoke this after appending at least one vote.
func AverageRate(rates []int) int {
	if len(rates) == 0 {
		return 0
	}

	sum := 0
	for _, r := range rates {
		sum += r
	}
	return int(math.Round(float64(sum) / float64(len(rates))))
}

// RateChoices lists the scale for form rendering, lowest first.
func RateChoices() []RateChoice {
	choices := make([]RateChoice, 0, MaxRate)
	for n := MinRate; n <= MaxRate; n++ {
		choices = append(choices, RateChoice{Value: n, Label: rateLabels[n]})
	}
	return choices
}

type RateChoice struct {
	Value int
	Label string
}
