// Package extract defines the uniform contract every format extractor
// fulfils: one physical file in, one Payload out.
package extract

import "context"

// Extractor turns one physical file into a Payload. Implementations
// must not return a nil Rows slice: no data is an empty sequence.
type Extractor interface {
	Parse(ctx context.Context, path string) (Payload, error)
}

// Payload is the single output shape shared by all extractors.
type Payload struct {
	// RawText holds unstructured text recovered from the source, if any.
	RawText string `json:"raw_text"`
	// RawStructured describes source-specific structure (tables, header
	// fields) kept for audit; its shape varies per extractor.
	RawStructured map[string]any `json:"raw_structured"`
	// Rows is the flattened union of all table rows found in the source.
	Rows []map[string]any `json:"rows"`
}

// EmptyPayload returns a valid zero-data payload.
func EmptyPayload() Payload {
	return Payload{
		RawStructured: map[string]any{},
		Rows:          []map[string]any{},
	}
}

// OutcomeKind distinguishes "data", "no data", and "failed" stage results.
type OutcomeKind string

const (
	OutcomeData    OutcomeKind = "data"
	OutcomeEmpty   OutcomeKind = "empty"
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the explicit result of one extraction or mapping stage,
// replacing silent per-stage exception swallowing with a testable branch.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Stage  string      `json:"stage"`
	Reason string      `json:"reason,omitempty"`
}

func DataOutcome(stage string) Outcome  { return Outcome{Kind: OutcomeData, Stage: stage} }
func EmptyOutcome(stage string) Outcome { return Outcome{Kind: OutcomeEmpty, Stage: stage} }
func FailureOutcome(stage, reason string) Outcome {
	return Outcome{Kind: OutcomeFailure, Stage: stage, Reason: reason}
}
