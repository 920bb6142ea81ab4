package service

// ProbabilitySource yields the fraction of user traffic routed to the legacy
// user service. Implementations re-read their source on every call.
type ProbabilitySource interface {
	// Probability returns a value in [0,1]
	Probability() float64
}
