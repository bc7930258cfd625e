package sectors

import (
	"math"
	"strings"
	"time"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

// Normalization constants shared by every variant.
const (
	budgetNorm     = 1_000_000.0
	timelineNorm   = 365.0
	dependencyNorm = 10.0

	confidenceStep = 0.2

	// weightScale maps sub-unit sector weights (around 0.1) back toward [0,1].
	weightScale = 10.0
)

var commonMitigations = []string{
	"Regular risk monitoring and assessment",
	"Stakeholder communication and alignment",
	"Contingency planning and backup procedures",
	"Vendor and supplier diversification",
	"Staff training and skill development",
	"Documentation and knowledge management",
	"Quality assurance and testing protocols",
	"Budget reserves for unexpected costs",
	"Timeline buffers for critical activities",
	"Compliance monitoring and reporting",
}

// now is the assessment clock.
var now = func() time.Time { return time.Now().UTC() }

// BaseRisk is the sector-independent risk from budget, timeline, complexity
// and dependency count, clamped to [0,1].
func BaseRisk(p model.ProjectData) float64 {
	budget := math.Min(p.Budget/budgetNorm, 1)
	timeline := math.Min(float64(p.TimelineDays)/timelineNorm, 1)
	deps := math.Min(float64(len(p.Dependencies))/dependencyNorm, 1)

	score := budget*0.25 + timeline*0.25 + p.ComplexityScore*0.35 + deps*0.15
	return clamp01(score)
}

// Confidence grows by 0.2 for each populated input signal.
func Confidence(p model.ProjectData) float64 {
	n := 0
	if p.Description != "" {
		n++
	}
	if p.Budget > 0 {
		n++
	}
	if p.TimelineDays > 0 {
		n++
	}
	if len(p.Technologies) > 0 {
		n++
	}
	if len(p.HistoricalRisks) > 0 {
		n++
	}
	return math.Min(float64(n)*confidenceStep, 1)
}

// CommonMitigations returns the domain-agnostic strategies every sector starts from.
func CommonMitigations() []string {
	return append([]string(nil), commonMitigations...)
}

// Mitigations appends sector strategies to the common list and truncates to limit.
func Mitigations(sectorSpecific []string, limit int) []string {
	all := append(CommonMitigations(), sectorSpecific...)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// profile carries the configured identity of a sector. It is a value and is
// never modified after construction.
type profile struct {
	sector catalog.Sector
}

func (p profile) ID() string      { return p.sector.ID }
func (p profile) Name() string    { return p.sector.Name }
func (p profile) Weight() float64 { return p.sector.Weight }

func (p profile) RiskFactors() []string {
	return append([]string(nil), p.sector.RiskFactors...)
}

// scale applies the sector weight scaling and caps at 1.
func (p profile) scale(total float64) float64 {
	return math.Min(total*p.sector.Weight*weightScale, 1)
}

func (p profile) assessment(risk float64, factors, strategies []string, confidence float64) model.RiskAssessment {
	return model.RiskAssessment{
		SectorID:             p.sector.ID,
		RiskLevel:            clamp01(risk),
		RiskFactors:          factors,
		MitigationStrategies: strategies,
		Confidence:           clamp01(confidence),
		Timestamp:            now(),
	}
}

// band returns the recommendations of the first threshold strictly below
// risk, or fallback, truncated to limit.
func band(risk float64, bands []riskBand, fallback []string, limit int) []string {
	recs := fallback
	for _, b := range bands {
		if risk > b.above {
			recs = b.recommendations
			break
		}
	}
	out := append([]string(nil), recs...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type riskBand struct {
	above           float64
	recommendations []string
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// countKeywords counts how many keywords occur in text.
func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func containsAny(text string, keywords []string) bool {
	return countKeywords(text, keywords) > 0
}

// matchesTerm reports whether an underscore-joined term appears in text
// either spaced ("fiber optic") or verbatim ("fiber_optic").
func matchesTerm(text, term string) bool {
	return strings.Contains(text, strings.ReplaceAll(term, "_", " ")) || strings.Contains(text, term)
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
