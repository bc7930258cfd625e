package render

import (
	service "github.com/okian/telerisk/internal/app"
	"github.com/okian/telerisk/internal/domain/report"
)

// BatchDocument is the serializable form of a batch result.
type BatchDocument struct {
	BatchID string              `json:"batch_id" yaml:"batch_id"`
	Results []BatchItemDocument `json:"results" yaml:"results"`
}

type BatchItemDocument struct {
	Index     int              `json:"index" yaml:"index"`
	ProjectID string           `json:"project_id" yaml:"project_id"`
	Duplicate bool             `json:"duplicate,omitempty" yaml:"duplicate,omitempty"`
	Error     string           `json:"error,omitempty" yaml:"error,omitempty"`
	Report    *report.Document `json:"report,omitempty" yaml:"report,omitempty"`
}

// Batch projects res into its document form.
func Batch(res *service.BatchResult) BatchDocument {
	doc := BatchDocument{BatchID: res.BatchID, Results: make([]BatchItemDocument, 0, len(res.Results))}
	for _, r := range res.Results {
		item := BatchItemDocument{Index: r.Index, ProjectID: r.ProjectID, Duplicate: r.Duplicate}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		if r.Report != nil {
			d := r.Report.Document()
			item.Report = &d
		}
		doc.Results = append(doc.Results, item)
	}
	return doc
}
