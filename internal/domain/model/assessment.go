package model

import "time"

// RiskAssessment is the output of one sector scorer for one project.
type RiskAssessment struct {
	SectorID             string         `json:"sector_id" yaml:"sector_id"`
	RiskLevel            float64        `json:"risk_level" yaml:"risk_level"`
	RiskFactors          []string       `json:"risk_factors" yaml:"risk_factors"`
	MitigationStrategies []string       `json:"mitigation_strategies" yaml:"mitigation_strategies"`
	Confidence           float64        `json:"confidence" yaml:"confidence"`
	Timestamp            time.Time      `json:"timestamp" yaml:"timestamp"`
	Failure              *ScorerFailure `json:"-" yaml:"-"` // set on fallback assessments
}

// Fallback reports whether the assessment replaced a failed scorer run.
func (a RiskAssessment) Fallback() bool {
	return a.Failure != nil
}

// RankedItem is one entry of a ranked list: a risk factor or a
// recommendation, the sector display name, and that sector's risk level.
type RankedItem struct {
	Text      string
	Sector    string
	RiskLevel float64
}
