package sanity

import (
	"github.com/louisbranch/sanity/internal/core/dice"
	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
)

// Outcome represents the outcome band of a Sanity check.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeRaise
	OutcomeSuccess
	OutcomePositiveFailure
	OutcomeNegativeFailure
	OutcomeCriticalFailure
)

// outcomeCount is the number of defined outcome bands.
const outcomeCount = int(OutcomeCriticalFailure)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnspecified:
		return "unspecified"
	case OutcomeRaise:
		return "raise"
	case OutcomeSuccess:
		return "success"
	case OutcomePositiveFailure:
		return "positive failure"
	case OutcomeNegativeFailure:
		return "negative failure"
	case OutcomeCriticalFailure:
		return "critical failure"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the five outcome bands.
func (o Outcome) Valid() bool {
	return o >= OutcomeRaise && o <= OutcomeCriticalFailure
}

// IsFailure reports whether o is any of the failure bands.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomePositiveFailure, OutcomeNegativeFailure, OutcomeCriticalFailure:
		return true
	default:
		return false
	}
}

// Outcomes returns the outcome bands from best to worst.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeRaise,
		OutcomeSuccess,
		OutcomePositiveFailure,
		OutcomeNegativeFailure,
		OutcomeCriticalFailure,
	}
}

// ErrInvalidTrials indicates a simulation was asked for a negative number of trials.
var ErrInvalidTrials = apperrors.New(apperrors.CodeSimulationInvalidTrials, "trials must be non-negative")

// ErrUnknownOutcome indicates an outcome outside the defined bands reached a tally.
var ErrUnknownOutcome = apperrors.New(apperrors.CodeOutcomeUnknown, "outcome is not a defined band")

// ErrInvalidCount indicates a tally was built from a negative outcome count.
var ErrInvalidCount = apperrors.New(apperrors.CodeTallyInvalidCount, "outcome count must be non-negative")

// RulesMetadata captures the ruleset semantics for Sanity check interpretation.
type RulesMetadata struct {
	System       string
	Module       string
	RulesVersion string
	DiceModel    string
	NetFormula   string
	WildDieRule  string
	Bands        []Band
}

// Band is an inclusive range of net rolls mapped to an outcome. Min or Max
// is nil when the band is open on that side.
type Band struct {
	Outcome Outcome
	Min     *int
	Max     *int
}

// ExplainStep represents a deterministic evaluation step.
type ExplainStep struct {
	Code    string
	Message string
	Data    map[string]any
}

// CheckRequest describes a single Sanity check.
type CheckRequest struct {
	// Guts is the face count of the Guts die.
	Guts int
	// Mythos is the face count of the Mythos die; 0 means no Mythos die.
	Mythos   int
	Modifier int
	// Wild rolls a wild die alongside Guts.
	Wild bool
	// WildMythos also rolls a wild die alongside Mythos. It is off under the
	// standard rules.
	WildMythos bool
}

// CheckResult captures the rolls and outcome of a Sanity check.
type CheckResult struct {
	Guts     dice.Outcome
	Mythos   dice.Outcome
	Modifier int
	Net      int
	Outcome  Outcome
}

// SimulationRequest describes a batch of identical Sanity checks.
type SimulationRequest struct {
	Guts     int
	Mythos   int
	Modifier int
	Trials   int
	// WildMythos is passed through to every check.
	WildMythos bool
	// OnCheck, when set, is called after each trial with its zero-based index.
	OnCheck func(trial int, result CheckResult)
}

// OutcomeCount captures a count for a specific outcome.
type OutcomeCount struct {
	Outcome Outcome
	Count   int
}
