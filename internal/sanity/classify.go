package sanity

// Band thresholds for the net roll.
const (
	RaiseMin           = 8
	SuccessMin         = 4
	PositiveFailureMin = 0
	NegativeFailureMin = -3
)

// Classify maps a net roll to its outcome band. Every integer falls in
// exactly one band.
func Classify(net int) Outcome {
	switch {
	case net >= RaiseMin:
		return OutcomeRaise
	case net >= SuccessMin:
		return OutcomeSuccess
	case net >= PositiveFailureMin:
		return OutcomePositiveFailure
	case net >= NegativeFailureMin:
		return OutcomeNegativeFailure
	default:
		return OutcomeCriticalFailure
	}
}
