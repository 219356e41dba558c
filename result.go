package tvimport

// Import statuses reported by the journaling service. Queued and processing
// are transient; the interpreter only ever sees final documents.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

// ImportResponse is the structured status document the journaling service
// returns once an import finished.
type ImportResponse struct {
	Status string     `json:"status"`
	Info   ImportInfo `json:"info"`
}

// ImportInfo carries the outcome details of a finished import.
type ImportInfo struct {
	ExecCount        int    `json:"exec_count"`
	Duplicates       int    `json:"duplicate_count"`
	OverQuota        int    `json:"overquota_count"`
	SkippedFutures   bool   `json:"skipped_futures"`
	SkippedOptions   bool   `json:"skipped_options"`
	SkippedForex     bool   `json:"skipped_forex"`
	ErrorDescription string `json:"error_description"`
	ErrorExecNumber  int    `json:"error_execnumber"` // 1-based index of the failing execution
}

// Outcome classifies a finished import.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeOther covers any status string the service may invent; it is
	// surfaced verbatim through RawStatus rather than guessed at.
	OutcomeOther Outcome = "other"
)

// ImportResult is the interpreted outcome of an upload, a read-only
// projection over the service response. It does no I/O.
type ImportResult struct {
	Outcome   Outcome
	RawStatus string // verbatim service status, meaningful for OutcomeOther

	Imported   int
	Duplicates int
	OverQuota  int

	SkippedFutures bool
	SkippedOptions bool
	SkippedForex   bool

	ErrorDescription string
	ErrorExecNumber  int // 1-based, as reported
}

// InterpretImportResponse classifies the service response. A nil response
// means the transport produced no structured outcome at all and is reported
// as ErrNoResponse.
func InterpretImportResponse(resp *ImportResponse) (*ImportResult, error) {
	if resp == nil {
		return nil, ErrNoResponse
	}
	res := &ImportResult{RawStatus: resp.Status, Imported: resp.Info.ExecCount}
	switch resp.Status {
	case StatusSucceeded:
		res.Outcome = OutcomeSucceeded
		res.Duplicates = resp.Info.Duplicates
		res.OverQuota = resp.Info.OverQuota
		res.SkippedFutures = resp.Info.SkippedFutures
		res.SkippedOptions = resp.Info.SkippedOptions
		res.SkippedForex = resp.Info.SkippedForex
	case StatusFailed:
		res.Outcome = OutcomeFailed
		res.ErrorDescription = resp.Info.ErrorDescription
		res.ErrorExecNumber = resp.Info.ErrorExecNumber
	default:
		res.Outcome = OutcomeOther
	}
	return res, nil
}

// Partial reports whether a succeeded import still skipped or rejected
// records: duplicates, over-quota rejections or skipped instrument classes.
// Advisory signals, not failures, but worth surfacing distinctly from a
// clean success.
func (r *ImportResult) Partial() bool {
	return r.Duplicates > 0 || r.OverQuota > 0 ||
		r.SkippedFutures || r.SkippedOptions || r.SkippedForex
}

// FailingIndex returns the 0-based index of the failing execution in the
// uploaded batch, or -1 when none was reported. The caller uses it to show
// the actual record that was refused.
func (r *ImportResult) FailingIndex() int {
	if r.ErrorExecNumber <= 0 {
		return -1
	}
	return r.ErrorExecNumber - 1
}

// Unimported returns how many of the total uploaded executions did not make
// it into the journal.
func (r *ImportResult) Unimported(total int) int {
	return total - r.Imported
}
