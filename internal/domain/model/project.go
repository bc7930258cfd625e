// Package model contains the domain types passed between the engine layers.
package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ProjectData is the input of an assessment. Treat it as immutable once built.
type ProjectData struct {
	ProjectID       string   `json:"project_id" yaml:"project_id" validate:"required"`
	SectorID        string   `json:"sector_id,omitempty" yaml:"sector_id,omitempty"` // hint only
	Description     string   `json:"description" yaml:"description" validate:"required"`
	Budget          float64  `json:"budget" yaml:"budget" validate:"gt=0"`
	TimelineDays    int      `json:"timeline_days" yaml:"timeline_days" validate:"gt=0"`
	ComplexityScore float64  `json:"complexity_score" yaml:"complexity_score" validate:"gte=0,lte=1"`
	Stakeholders    []string `json:"stakeholders" yaml:"stakeholders" validate:"required,min=1"`
	Technologies    []string `json:"technologies" yaml:"technologies" validate:"required,min=1"`
	Dependencies    []string `json:"dependencies" yaml:"dependencies"`
	HistoricalRisks []string `json:"historical_risks,omitempty" yaml:"historical_risks,omitempty"`
}

// projectValidate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var projectValidate = validator.New()

// violationMessages maps struct fields to the message reported for any failed tag.
var violationMessages = map[string]string{
	"ProjectID":       "Project ID is required",
	"Description":     "Project description is required",
	"Budget":          "Project budget must be greater than 0",
	"TimelineDays":    "Project timeline must be greater than 0 days",
	"ComplexityScore": "Complexity score must be between 0.0 and 1.0",
	"Technologies":    "At least one technology should be specified",
	"Stakeholders":    "At least one stakeholder should be specified",
}

// violationOrder fixes the order in which issues are reported.
var violationOrder = []string{
	"ProjectID",
	"Description",
	"Budget",
	"TimelineDays",
	"ComplexityScore",
	"Technologies",
	"Stakeholders",
}

// Validate checks every field and returns a *ValidationError listing all
// violations, or nil.
func (p *ProjectData) Validate() error {
	err := projectValidate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Issues: []string{err.Error()}}
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.StructField()] = true
	}

	issues := make([]string, 0, len(failed))
	for _, field := range violationOrder {
		if failed[field] {
			issues = append(issues, violationMessages[field])
		}
	}
	return &ValidationError{Issues: issues}
}
