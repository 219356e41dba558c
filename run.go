package tvimport

// RunReport aggregates the outcome of one import run. The top-level flow
// builds one and returns it; the CLI derives the exit status from it instead
// of counting errors in global state.
type RunReport struct {
	Transactions int // transactions seen in the feed
	Skipped      int // non-trade transactions filtered out
	Executions   int // executions built and uploaded

	Result *ImportResult // nil when nothing was uploaded
	Errors []error
}

// AddError records a failure encountered during the run.
func (r *RunReport) AddError(err error) {
	r.Errors = append(r.Errors, err)
}

// Failed reports whether the run must exit non-zero: any recorded error, an
// upload the service rejected, or an outcome it could not classify. A
// zero-execution run with no errors is a clean success.
func (r *RunReport) Failed() bool {
	if len(r.Errors) > 0 {
		return true
	}
	return r.Result != nil && r.Result.Outcome != OutcomeSucceeded
}
