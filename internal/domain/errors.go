package domain

import "fmt"

// ValidationError reports a bad question from the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid question: " + e.Reason }

// CorpusLoadError reports a failure to load the corpus artifact at startup.
// The process must not serve requests after one of these.
type CorpusLoadError struct {
	Path string
	Err  error
}

func (e *CorpusLoadError) Error() string {
	return fmt.Sprintf("load corpus %s: %v", e.Path, e.Err)
}

func (e *CorpusLoadError) Unwrap() error { return e.Err }

// EmbeddingError reports a failure of the remote embedding stage:
// transport error, explicit remote error payload, or an uninterpretable
// response shape.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return "embedding failed: " + e.Err.Error() }

func (e *EmbeddingError) Unwrap() error { return e.Err }

// SynthesisError reports a failure of the remote chat-completion stage.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return "synthesis failed: " + e.Err.Error() }

func (e *SynthesisError) Unwrap() error { return e.Err }

// InternalError wraps anything unanticipated with a diagnostic message so
// no fault leaves the orchestrator unhandled.
type InternalError struct {
	Diag string
}

func (e *InternalError) Error() string { return "internal error: " + e.Diag }
