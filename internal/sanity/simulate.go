package sanity

import (
	"strconv"

	"github.com/louisbranch/sanity/internal/core/dice"
	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
)

// Tally counts outcomes across a simulation. The zero value is an empty
// tally with every band at zero.
type Tally struct {
	counts [outcomeCount]int
}

// Count returns the number of checks that landed in o.
func (t Tally) Count(o Outcome) int {
	if !o.Valid() {
		return 0
	}
	return t.counts[o-1]
}

// Total returns the number of checks tallied.
func (t Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Failures returns the number of checks in any failure band.
func (t Tally) Failures() int {
	return t.Count(OutcomePositiveFailure) + t.Count(OutcomeNegativeFailure) + t.Count(OutcomeCriticalFailure)
}

// FailureFraction returns failures over total, or 0 for an empty tally.
func (t Tally) FailureFraction() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Failures()) / float64(total)
}

// Counts returns the count of every band, best to worst.
func (t Tally) Counts() []OutcomeCount {
	outcomes := Outcomes()
	counts := make([]OutcomeCount, 0, len(outcomes))
	for _, o := range outcomes {
		counts = append(counts, OutcomeCount{Outcome: o, Count: t.Count(o)})
	}
	return counts
}

// TallyOf builds a tally from explicit counts. Counts for the same outcome
// add up; negative counts and undefined outcomes are rejected.
func TallyOf(counts ...OutcomeCount) (Tally, error) {
	var tally Tally
	for _, c := range counts {
		if !c.Outcome.Valid() {
			return Tally{}, unknownOutcome(c.Outcome)
		}
		if c.Count < 0 {
			return Tally{}, apperrors.WithMetadata(ErrInvalidCount.Code, ErrInvalidCount.Message, map[string]string{
				"outcome": c.Outcome.String(),
				"count":   strconv.Itoa(c.Count),
			})
		}
		tally.counts[c.Outcome-1] += c.Count
	}
	return tally, nil
}

func (t *Tally) add(o Outcome) error {
	if !o.Valid() {
		return unknownOutcome(o)
	}
	t.counts[o-1]++
	return nil
}

func unknownOutcome(o Outcome) error {
	return apperrors.WithMetadata(ErrUnknownOutcome.Code, ErrUnknownOutcome.Message, map[string]string{
		"outcome": strconv.Itoa(int(o)),
	})
}

// Simulate runs request.Trials Sanity checks with a wild die on Guts and
// tallies their outcomes.
//
// The returned tally always accounts for every trial: Total() == Trials.
func Simulate(roller *dice.Roller, request SimulationRequest) (Tally, error) {
	if request.Trials < 0 {
		return Tally{}, apperrors.WithMetadata(ErrInvalidTrials.Code, ErrInvalidTrials.Message, map[string]string{
			"trials": strconv.Itoa(request.Trials),
		})
	}

	check := CheckRequest{
		Guts:       request.Guts,
		Mythos:     request.Mythos,
		Modifier:   request.Modifier,
		Wild:       true,
		WildMythos: request.WildMythos,
	}

	var tally Tally
	for i := 0; i < request.Trials; i++ {
		result := Check(roller, check)
		if err := tally.add(result.Outcome); err != nil {
			return Tally{}, err
		}
		if request.OnCheck != nil {
			request.OnCheck(i, result)
		}
	}
	return tally, nil
}
