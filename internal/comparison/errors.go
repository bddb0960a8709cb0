// Package comparison ranks two fully-scored properties and produces an
// explained, reproducible recommendation.
package comparison

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrMissingPropertyData is returned when a property lacks the identifier
// required to attribute comparison output. Caller error; not retryable
// without fixing the input.
var ErrMissingPropertyData = eris.New("comparison: property identifier missing")

// ErrConfidenceTooLow is returned when both properties scored successfully
// but the inputs are too sparse to support a recommendation. A deliberate
// refusal, not a failure; callers should present it as "insufficient data".
var ErrConfidenceTooLow = eris.New("comparison: average confidence below threshold")

// ScoringError wraps a category-scorer failure, attributed to the property
// that failed. Callers should inspect the nested cause.
type ScoringError struct {
	PropertyID string
	Err        error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("comparison: scoring failed for property %s: %v", e.PropertyID, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }
