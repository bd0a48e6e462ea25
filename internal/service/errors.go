package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAdjustmentParse is returned when the model output is not a valid adjustment object.
	ErrAdjustmentParse = errors.New("failed to parse AI adjustment response")
	// ErrProfileNotFound is returned when a user has no profile document.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrAdjustmentNotFound is returned when no adjustment is stored for a date.
	ErrAdjustmentNotFound = errors.New("AI adjustment not found")
	// ErrUnauthorized is returned for missing, invalid or expired session credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a field-level input error surfaced as HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PipelineError records the adjustment pipeline stage that failed.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("adjustment pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func stageError(stage string, err error) error {
	return &PipelineError{Stage: stage, Err: err}
}
