package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Simulation errors
	CodeSimulationInvalidTrials Code = "SIMULATION_INVALID_TRIALS"

	// Outcome errors
	CodeOutcomeUnknown Code = "OUTCOME_UNKNOWN"

	// Tally errors
	CodeTallyInvalidCount Code = "TALLY_INVALID_COUNT"

	// Sweep errors
	CodeSweepInvalidGrid Code = "SWEEP_INVALID_GRID"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// Exit codes returned by the command line for domain errors.
const (
	ExitInternal = 1
	ExitUsage    = 2
)

// ExitCode maps domain codes to process exit codes.
func (c Code) ExitCode() int {
	switch c {
	// Usage - bad input from flags or environment
	case CodeSimulationInvalidTrials,
		CodeSweepInvalidGrid,
		CodeConfigInvalid:
		return ExitUsage

	default:
		return ExitInternal
	}
}
