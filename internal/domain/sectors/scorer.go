// Package sectors defines the per-sector risk scorers and the dispatch table
// that binds configured sector ids to a scorer variant.
package sectors

import (
	"context"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

// Sector ids with a dedicated scorer.
const (
	NetworkInfrastructureID = "network_infrastructure"
	CybersecurityID         = "cybersecurity"
	RegulatoryComplianceID  = "regulatory_compliance"
)

// Scorer assesses one sector's risk for a project.
type Scorer interface {
	ID() string
	Name() string
	Weight() float64
	RiskFactors() []string

	// Implemented reports whether the sector has a dedicated scorer.
	Implemented() bool

	// Assess scores a validated project, honoring ctx for cancellation.
	Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error)

	// Recommendations maps an assessment to actionable guidance.
	Recommendations(a model.RiskAssessment) []string
}

// Constructor builds a scorer variant from a configured sector.
type Constructor func(s catalog.Sector) Scorer

var dedicated = map[string]Constructor{
	NetworkInfrastructureID: NewNetworkInfrastructure,
	CybersecurityID:         NewCybersecurity,
	RegulatoryComplianceID:  NewRegulatoryCompliance,
}

// New returns the dedicated scorer for the sector id, or a placeholder.
func New(s catalog.Sector) Scorer {
	if ctor, ok := dedicated[s.ID]; ok {
		return ctor(s)
	}
	return NewPlaceholder(s)
}

// HasDedicated reports whether id is bound to a dedicated variant.
func HasDedicated(id string) bool {
	_, ok := dedicated[id]
	return ok
}

// Build creates one scorer per configured sector.
func Build(c *catalog.Catalog) map[string]Scorer {
	out := make(map[string]Scorer, len(c.IDs()))
	for _, s := range c.Sectors() {
		out[s.ID] = New(s)
	}
	return out
}
