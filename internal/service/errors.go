package service

import (
	"fmt"

	"firsgate/internal/domain"
)

// TimedError is a pipeline failure that carries the stage timings collected
// before the run stopped.
type TimedError interface {
	error
	StageTimings() domain.Performance
}

// ValidationError carries the findings of a failed full validation.
type ValidationError struct {
	Result      domain.ValidationResult
	Performance domain.Performance
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d error(s)", domain.ErrValidation, len(e.Result.Errors))
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

func (e *ValidationError) StageTimings() domain.Performance { return e.Performance }

// ConflictError reports an IRN that is already indexed.
type ConflictError struct {
	IRN         string
	Performance domain.Performance
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("service.Sign: %s: %v", e.IRN, domain.ErrDuplicateIRN)
}

func (e *ConflictError) Unwrap() error { return domain.ErrDuplicateIRN }

func (e *ConflictError) StageTimings() domain.Performance { return e.Performance }

// ProcessingError reports a local pipeline stage failure. Artifacts written
// by earlier stages are left in place.
type ProcessingError struct {
	Stage       string
	Err         error
	Performance domain.Performance
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed at %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

func (e *ProcessingError) StageTimings() domain.Performance { return e.Performance }
