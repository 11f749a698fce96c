package model

import "net/http"

// Outcome tags a verification result.
type Outcome int

const (
	OutcomeVerified Outcome = iota
	OutcomeMismatch
	OutcomeInternalError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// VerificationResult is Verified | Mismatch | InternalError(reason).
type VerificationResult struct {
	Outcome Outcome
	Reason  string
	Err     error
}

func Verified() VerificationResult {
	return VerificationResult{Outcome: OutcomeVerified, Reason: ReasonVerified}
}

func Mismatch(reason string) VerificationResult {
	return VerificationResult{Outcome: OutcomeMismatch, Reason: reason}
}

func InternalError(reason string, err error) VerificationResult {
	return VerificationResult{Outcome: OutcomeInternalError, Reason: reason, Err: err}
}

func (r VerificationResult) Success() bool {
	return r.Outcome == OutcomeVerified
}

// StatusCode maps the outcome to HTTP: 200 verified, 400 mismatch, 500 for
// undecodable input, configuration and infrastructure failures.
func (r VerificationResult) StatusCode() int {
	switch r.Outcome {
	case OutcomeVerified:
		return http.StatusOK
	case OutcomeMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (r VerificationResult) Response() VerificationResponse {
	if r.Success() {
		return VerificationResponse{Success: true, Message: MessageVerified, Reason: r.Reason}
	}
	return VerificationResponse{Success: false, Message: MessageVerificationFailed, Reason: r.Reason}
}
