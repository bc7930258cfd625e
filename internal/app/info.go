package service

import (
	"context"

	"github.com/okian/telerisk/internal/domain/risk"
)

// SectorInfo describes one configured sector for display.
type SectorInfo struct {
	risk.SectorSummary `yaml:",inline"`

	Description string   `json:"description" yaml:"description"`
	RiskFactors []string `json:"risk_factors" yaml:"risk_factors"`
	UAEContext  bool     `json:"uae_context" yaml:"uae_context"`
}

// RegulatoryEnvironment names the regulator, laws and emergency contacts.
type RegulatoryEnvironment struct {
	PrimaryRegulator  string   `json:"primary_regulator" yaml:"primary_regulator"`
	KeyLaws           []string `json:"key_laws" yaml:"key_laws"`
	EmergencyContacts []string `json:"emergency_contacts" yaml:"emergency_contacts"`
}

// SectorOverview is the name, weight and description of one sector.
type SectorOverview struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Description string  `json:"description" yaml:"description"`
}

// UAEContext is the country-wide regulatory and business context.
type UAEContext struct {
	RegulatoryEnvironment RegulatoryEnvironment     `json:"regulatory_environment" yaml:"regulatory_environment"`
	RiskTolerance         map[string]float64        `json:"risk_tolerance" yaml:"risk_tolerance"`
	RecommendationEngine  map[string]any            `json:"recommendation_engine" yaml:"recommendation_engine"`
	SectorsOverview       map[string]SectorOverview `json:"sectors_overview" yaml:"sectors_overview"`
}

// SectorInformation lists every configured sector in id order.
func (s *Service) SectorInformation(_ context.Context) []SectorInfo {
	summary := s.risk.SectorSummary()
	out := make([]SectorInfo, 0, len(summary))
	for _, sum := range summary {
		sec, err := s.catalog.Sector(sum.ID)
		if err != nil {
			continue
		}
		out = append(out, SectorInfo{
			SectorSummary: sum,
			Description:   sec.Description,
			RiskFactors:   append([]string(nil), sec.RiskFactors...),
			UAEContext:    true,
		})
	}
	return out
}

// UAEContext returns the configured regulatory environment and sector overview.
func (s *Service) UAEContext(_ context.Context) UAEContext {
	settings := s.catalog.UAESettings()
	overview := make(map[string]SectorOverview, len(s.catalog.IDs()))
	for _, sec := range s.catalog.Sectors() {
		overview[sec.ID] = SectorOverview{Name: sec.Name, Weight: sec.Weight, Description: sec.Description}
	}
	tolerance := make(map[string]float64, len(settings.RiskToleranceLevels))
	for k, v := range settings.RiskToleranceLevels {
		tolerance[k] = v
	}
	return UAEContext{
		RegulatoryEnvironment: RegulatoryEnvironment{
			PrimaryRegulator:  settings.RegulatoryAuthority,
			KeyLaws:           append([]string(nil), settings.ComplianceFrameworks...),
			EmergencyContacts: append([]string(nil), settings.EmergencyContactAuthorities...),
		},
		RiskTolerance:        tolerance,
		RecommendationEngine: s.catalog.RecommendationEngine(),
		SectorsOverview:      overview,
	}
}
