package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProject matches every *ValidationError via errors.Is.
var ErrInvalidProject = errors.New("project data validation failed")

// ValidationError lists every violated ProjectData constraint.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidProject.Error() + ": " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProject }

// ScorerFailure records why a sector scorer could not produce an assessment.
type ScorerFailure struct {
	SectorID string
	Cause    error
}

func (f *ScorerFailure) Error() string {
	return fmt.Sprintf("sector %s scorer failed: %v", f.SectorID, f.Cause)
}

func (f *ScorerFailure) Unwrap() error { return f.Cause }
