package sanity

import "github.com/louisbranch/sanity/internal/core/dice"

// DefaultCheckRequest returns a d6 Guts check with a wild die against no
// Mythos die and no modifier.
func DefaultCheckRequest() CheckRequest {
	return CheckRequest{Guts: 6, Wild: true}
}

// Check performs a single Sanity check. Guts is rolled before Mythos, so a
// roller seeded the same way always yields the same result.
func Check(roller *dice.Roller, request CheckRequest) CheckResult {
	guts := roller.Roll(request.Guts, request.Wild)
	mythos := roller.Roll(request.Mythos, request.WildMythos)
	net := guts.Total - mythos.Total - request.Modifier

	return CheckResult{
		Guts:     guts,
		Mythos:   mythos,
		Modifier: request.Modifier,
		Net:      net,
		Outcome:  Classify(net),
	}
}

// Rules returns the static ruleset metadata for the Sanity check.
func Rules() RulesMetadata {
	raise, success, positive, negative := RaiseMin, SuccessMin, PositiveFailureMin, NegativeFailureMin
	successMax, positiveMax, negativeMax, criticalMax := raise-1, success-1, positive-1, negative-1

	return RulesMetadata{
		System:       "Realms of Cthulhu",
		Module:       "Sanity",
		RulesVersion: "1.0.0",
		DiceModel:    "exploding guts die with d6 wild die vs exploding mythos die",
		NetFormula:   "guts - mythos - modifier",
		WildDieRule:  "wild die on guts only; the better of the guts and wild die counts",
		Bands: []Band{
			{Outcome: OutcomeRaise, Min: &raise},
			{Outcome: OutcomeSuccess, Min: &success, Max: &successMax},
			{Outcome: OutcomePositiveFailure, Min: &positive, Max: &positiveMax},
			{Outcome: OutcomeNegativeFailure, Min: &negative, Max: &negativeMax},
			{Outcome: OutcomeCriticalFailure, Max: &criticalMax},
		},
	}
}

// Explain returns the deterministic evaluation steps behind a check result.
func Explain(result CheckResult) []ExplainStep {
	return []ExplainStep{
		{
			Code:    "ROLL_GUTS",
			Message: "Roll the Guts die and keep the better of it and the wild die",
			Data: map[string]any{
				"base":       result.Guts.Base,
				"wild":       result.Guts.Wild,
				"total":      result.Guts.Total,
				"explosions": result.Guts.Explosions,
			},
		},
		{
			Code:    "ROLL_MYTHOS",
			Message: "Roll the Mythos die",
			Data: map[string]any{
				"base":       result.Mythos.Base,
				"wild":       result.Mythos.Wild,
				"total":      result.Mythos.Total,
				"explosions": result.Mythos.Explosions,
			},
		},
		{
			Code:    "APPLY_MODIFIER",
			Message: "Subtract Mythos and the modifier from Guts",
			Data: map[string]any{
				"guts":     result.Guts.Total,
				"mythos":   result.Mythos.Total,
				"modifier": result.Modifier,
				"net":      result.Net,
			},
		},
		{
			Code:    "SELECT_OUTCOME",
			Message: "Select outcome band for the net roll",
			Data: map[string]any{
				"net":           result.Net,
				"outcome_code":  int(result.Outcome),
				"outcome_label": result.Outcome.String(),
			},
		},
	}
}
