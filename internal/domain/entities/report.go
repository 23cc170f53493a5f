package entities

import (
	"errors"
	"time"
)

// VariantResult is the persisted record for one successfully hashed variant
type VariantResult struct {
	Variant  string    `json:"variant"`
	Download string    `json:"download"`
	Hashes   DigestSet `json:"hashes"`
}

// RunReport is the single output of a run, overwritten on every run
type RunReport struct {
	Results []VariantResult `json:"results"`
	Updated time.Time       `json:"updated"`
}

// VariantState tracks where a variant is in the pipeline
type VariantState string

// Pipeline states. Skipped is absorbing.
const (
	StateResolving VariantState = "resolving"
	StateFetching  VariantState = "fetching"
	StateHashing   VariantState = "hashing"
	StateDone      VariantState = "done"
	StateSkipped   VariantState = "skipped"
)

// VariantOutcome is the per-variant fold value: a result or a skip with its reason
type VariantOutcome struct {
	Variant  string
	State    VariantState
	FailedAt VariantState // state in which a skipped variant failed
	Result   *VariantResult
	Err      error
	Duration time.Duration
}

// Skipped reports whether the variant was dropped from the report
func (o VariantOutcome) Skipped() bool {
	return o.State == StateSkipped
}

// Reason classifies why a variant was skipped
func (o VariantOutcome) Reason() string {
	switch {
	case o.Err == nil:
		return ""
	case errors.Is(o.Err, ErrVersionNotFound):
		return "version not found"
	case errors.Is(o.Err, ErrTruncatedArtifact):
		return "truncated download"
	case errors.Is(o.Err, ErrFetchFailed):
		return "fetch failed"
	case errors.Is(o.Err, ErrHashing):
		return "hashing failed"
	case errors.Is(o.Err, ErrInvalidCatalog):
		return "invalid catalog entry"
	default:
		return "unexpected error"
	}
}
