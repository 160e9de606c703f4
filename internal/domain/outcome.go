package domain

// Outcome is the terminal result of ingesting a single candidate. Skips are
// expected control flow, not errors; a Failed outcome never aborts the scan.
type Outcome string

const (
	OutcomeIngested      Outcome = "ingested"
	OutcomeSkipDuplicate Outcome = "skip_duplicate"
	OutcomeSkipPrefilter Outcome = "skip_prefilter"
	OutcomeSkipNoText    Outcome = "skip_no_text"
	OutcomeSkipBudget    Outcome = "skip_budget"
	OutcomeFailed        Outcome = "failed"
)
