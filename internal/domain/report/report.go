// Package report assembles a project's sector assessments and rankings into
// a final report and its serializable document form.
package report

import (
	"math"
	"time"

	"github.com/okian/telerisk/internal/domain/model"
)

// Category is the risk band of an overall score.
type Category string

const (
	Critical Category = "CRITICAL"
	High     Category = "HIGH"
	Medium   Category = "MEDIUM"
	Low      Category = "LOW"
	Minimal  Category = "MINIMAL"
)

// Categorize maps an overall score to its band. Thresholds are inclusive.
func Categorize(score float64) Category {
	switch {
	case score >= 0.8:
		return Critical
	case score >= 0.6:
		return High
	case score >= 0.4:
		return Medium
	case score >= 0.2:
		return Low
	default:
		return Minimal
	}
}

// Report is the full result of one project assessment.
type Report struct {
	Project                 model.ProjectData
	Assessments             map[string]model.RiskAssessment
	OverallRisk             float64
	Category                Category
	TopRisks                []model.RankedItem
	PriorityRecommendations []model.RankedItem
	GeneratedAt             time.Time
}

// New builds a report and derives its category from overall.
func New(
	p model.ProjectData,
	assessments map[string]model.RiskAssessment,
	overall float64,
	top, recs []model.RankedItem,
	generatedAt time.Time,
) *Report {
	return &Report{
		Project:                 p,
		Assessments:             assessments,
		OverallRisk:             overall,
		Category:                Categorize(overall),
		TopRisks:                top,
		PriorityRecommendations: recs,
		GeneratedAt:             generatedAt,
	}
}

// Document is the serializable projection of a Report.
type Document struct {
	ProjectID               string                    `json:"project_id" yaml:"project_id"`
	ProjectDescription      string                    `json:"project_description" yaml:"project_description"`
	OverallRiskScore        float64                   `json:"overall_risk_score" yaml:"overall_risk_score"`
	RiskCategory            Category                  `json:"risk_category" yaml:"risk_category"`
	GeneratedAt             string                    `json:"generated_at" yaml:"generated_at"`
	SectorAssessments       map[string]SectorDocument `json:"sector_assessments" yaml:"sector_assessments"`
	TopRiskFactors          []RiskFactorDocument      `json:"top_risk_factors" yaml:"top_risk_factors"`
	PriorityRecommendations []RecommendationDocument  `json:"priority_recommendations" yaml:"priority_recommendations"`
}

// SectorDocument is one sector assessment in a report document.
type SectorDocument struct {
	RiskLevel   float64  `json:"risk_level" yaml:"risk_level"`
	RiskFactors []string `json:"risk_factors" yaml:"risk_factors"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
}

// RiskFactorDocument is one ranked risk factor.
type RiskFactorDocument struct {
	Factor    string  `json:"factor" yaml:"factor"`
	Sector    string  `json:"sector" yaml:"sector"`
	RiskLevel float64 `json:"risk_level" yaml:"risk_level"`
}

// RecommendationDocument is one ranked mitigation recommendation.
type RecommendationDocument struct {
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
	Sector         string  `json:"sector" yaml:"sector"`
	RiskLevel      float64 `json:"risk_level" yaml:"risk_level"`
}

// Document projects the report, rounding every score to three decimals.
func (r *Report) Document() Document {
	doc := Document{
		ProjectID:               r.Project.ProjectID,
		ProjectDescription:      r.Project.Description,
		OverallRiskScore:        Round(r.OverallRisk),
		RiskCategory:            r.Category,
		GeneratedAt:             r.GeneratedAt.Format(time.RFC3339),
		SectorAssessments:       make(map[string]SectorDocument, len(r.Assessments)),
		TopRiskFactors:          make([]RiskFactorDocument, 0, len(r.TopRisks)),
		PriorityRecommendations: make([]RecommendationDocument, 0, len(r.PriorityRecommendations)),
	}
	for id, a := range r.Assessments {
		factors := a.RiskFactors
		if factors == nil {
			factors = []string{}
		}
		doc.SectorAssessments[id] = SectorDocument{
			RiskLevel:   Round(a.RiskLevel),
			RiskFactors: factors,
			Confidence:  Round(a.Confidence),
		}
	}
	for _, t := range r.TopRisks {
		doc.TopRiskFactors = append(doc.TopRiskFactors, RiskFactorDocument{
			Factor: t.Text, Sector: t.Sector, RiskLevel: Round(t.RiskLevel),
		})
	}
	for _, rec := range r.PriorityRecommendations {
		doc.PriorityRecommendations = append(doc.PriorityRecommendations, RecommendationDocument{
			Recommendation: rec.Text, Sector: rec.Sector, RiskLevel: Round(rec.RiskLevel),
		})
	}
	return doc
}

// Round rounds v to three decimals for presentation.
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
