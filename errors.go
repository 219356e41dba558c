package tvimport

import "errors"

// ErrDataIntegrity marks fatal errors caused by the upstream feed violating a
// precondition: an unresolvable security reference, a malformed option
// symbol, or an internal misuse of the contract-size check. The batch is
// aborted on the first such error and no partial output should be trusted.
var ErrDataIntegrity = errors.New("data integrity")

// ErrNoResponse reports that the import service produced no structured
// outcome at all, a transport-level failure. The caller decides whether to
// retry; nothing about the batch itself is known to be wrong.
var ErrNoResponse = errors.New("no response from import service")
