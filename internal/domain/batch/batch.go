// Package batch defines the job and result types that flow through the
// batch assessment pipeline.
package batch

import (
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
)

// Request is one project submitted in a batch, with an optional sector filter.
type Request struct {
	Project model.ProjectData `json:"project" yaml:"project"`
	Sectors []string          `json:"sectors,omitempty" yaml:"sectors,omitempty"`
}

// Job is a queued request. Workers deliver exactly one Result on Done.
type Job struct {
	BatchID string
	Index   int
	Request Request
	Done    chan<- Result
}

// Result is the outcome of one batch item.
type Result struct {
	Index     int
	ProjectID string
	Report    *report.Report
	Err       error
	Duplicate bool
}
