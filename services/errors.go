package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange means an offered amount fell outside the listing's price bounds.
	ErrInvalidRange = errors.New("offered amount outside the listing price range")
	// ErrValidation means the request was malformed (bad id, missing field, bad status value).
	ErrValidation = errors.New("invalid request")
	// ErrSaleClosed means an accept was attempted on a property whose sale already closed.
	ErrSaleClosed = errors.New("property already sold")
)

// CascadeStep records the outcome of one fan-out step of a multi-collection
// cascade. Every step is idempotent, so a failed cascade can be re-issued as-is.
type CascadeStep struct {
	Name    string `json:"name"`
	Deleted int64  `json:"deleted,omitempty"`
	Err     error  `json:"-"`
}

// PartialCascadeError reports a cascade where some steps succeeded and at
// least one failed. There is no rollback; the caller retries to convergence.
type PartialCascadeError struct {
	Steps []CascadeStep
}

func (e *PartialCascadeError) Error() string {
	var failed []string
	for _, s := range e.Steps {
		if s.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", s.Name, s.Err))
		}
	}
	return "cascade partially applied, retry to converge: " + strings.Join(failed, "; ")
}

// Summary lists each step with its outcome, for the response body.
func (e *PartialCascadeError) Summary() map[string]string {
	out := make(map[string]string, len(e.Steps))
	for _, s := range e.Steps {
		if s.Err != nil {
			out[s.Name] = "failed: " + s.Err.Error()
		} else {
			out[s.Name] = "ok"
		}
	}
	return out
}
