package sectors

import (
	"context"
	"math"
	"strings"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

type framework struct {
	name     string
	risk     float64
	keywords []string
}

// UAE regulatory frameworks a telecom project may fall under.
var frameworks = []framework{
	{"tra_telecom_regulations", 0.8, []string{"telecom", "telecommunication", "network", "spectrum", "licensing"}},
	{"uae_cyber_security_law", 0.9, []string{"cybersecurity", "information security", "data protection", "cyber"}},
	{"uae_data_protection_law", 0.8, []string{"personal data", "privacy", "data processing", "customer information"}},
	{"consumer_protection_law", 0.6, []string{"consumer", "customer service", "billing", "complaints"}},
	{"federal_law_competition", 0.5, []string{"competition", "market", "pricing", "anti-monopoly"}},
	{"anti_money_laundering", 0.7, []string{"aml", "financial", "payment", "money laundering", "sanctions"}},
	{"critical_infrastructure", 0.9, []string{"critical infrastructure", "national security", "essential services"}},
}

var (
	licenseKeywords = []string{
		"new service", "service launch", "spectrum", "frequency",
		"infrastructure deployment", "network expansion", "interconnection",
	}
	crossBorderLicenseKeywords = []string{"international", "cross-border", "submarine cable", "satellite"}
	personalDataKeywords       = []string{
		"customer data", "personal information", "data collection",
		"data processing", "analytics", "artificial intelligence",
		"machine learning", "profiling", "behavioral analysis",
	}
	customerChannelKeywords = []string{"customer portal", "mobile app", "web service", "self-service"}
	auditedTechKeywords     = []string{"ai", "5g", "iot", "blockchain", "edge computing"}
	offshoreDependencyTerms = []string{"international", "offshore"}
	complianceHistoryTerms  = []string{"compliance", "policy"}
)

var regulatoryStrategies = []string{
	"Establish dedicated compliance officer and team",
	"Conduct regular regulatory impact assessments",
	"Implement compliance monitoring and reporting systems",
	"Maintain current regulatory knowledge and tracking",
	"Establish relationships with regulatory authorities",
	"Conduct pre-launch compliance reviews",
	"Implement data protection impact assessments (DPIA)",
	"Establish audit trail and documentation procedures",
	"Create compliance training programs for staff",
	"Implement automated compliance monitoring tools",
	"Establish legal review processes for new initiatives",
	"Maintain compliance risk register and mitigation plans",
	"Conduct regular internal compliance audits",
	"Establish incident response procedures for compliance breaches",
	"Implement change management for regulatory updates",
}

var regulatoryBands = []riskBand{
	{0.8, []string{
		"URGENT: Conduct immediate compliance risk assessment",
		"Engage legal counsel for regulatory review",
		"Implement emergency compliance monitoring",
		"Contact relevant regulatory authorities for guidance",
		"Suspend project activities until compliance confirmed",
	}},
	{0.6, []string{
		"Conduct comprehensive regulatory compliance review",
		"Engage compliance consultants for specialized expertise",
		"Implement enhanced compliance monitoring",
		"Review and update compliance policies and procedures",
		"Provide compliance training for project team",
	}},
	{0.4, []string{
		"Schedule regular compliance reviews",
		"Update compliance documentation",
		"Monitor regulatory changes and updates",
		"Maintain current compliance certifications",
	}},
}

var regulatoryBaseline = []string{
	"Continue baseline compliance activities",
	"Monitor for regulatory updates",
	"Maintain compliance documentation",
}

const (
	regulatoryMitigationLimit     = 12
	regulatoryRecommendationLimit = 6
)

// RegulatoryCompliance scores exposure to TRA licensing and UAE federal law.
type RegulatoryCompliance struct {
	profile
}

// NewRegulatoryCompliance builds the regulatory compliance variant.
func NewRegulatoryCompliance(s catalog.Sector) Scorer {
	return &RegulatoryCompliance{profile{sector: s}}
}

func (r *RegulatoryCompliance) Implemented() bool { return true }

func (r *RegulatoryCompliance) Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return model.RiskAssessment{}, err
	}

	desc := strings.ToLower(p.Description)
	techs := lowerAll(p.Technologies)

	fw := frameworkRisk(desc, p)
	license := licenseRisk(desc, p.TimelineDays)
	data := regulatoryDataRisk(desc, lowerAll(p.Dependencies))
	audit := auditRisk(techs, p)
	policy := policyRisk(p)

	total := BaseRisk(p)*0.15 + fw*0.25 + license*0.2 + data*0.2 + audit*0.1 + policy*0.1

	var factors []string
	if fw > 0.6 {
		factors = append(factors, "Regulatory violations")
	}
	if license > 0.5 {
		factors = append(factors, "License compliance")
	}
	if data > 0.5 {
		factors = append(factors, "Data protection breaches")
	}
	if audit > 0.5 {
		factors = append(factors, "Audit failures")
	}
	factors = append(factors, "Policy non-compliance")

	return r.assessment(r.scale(total), factors, Mitigations(regulatoryStrategies, regulatoryMitigationLimit), Confidence(p)), nil
}

func (r *RegulatoryCompliance) Recommendations(a model.RiskAssessment) []string {
	return band(a.RiskLevel, regulatoryBands, regulatoryBaseline, regulatoryRecommendationLimit)
}

// frameworkRisk averages the matched framework risks. The budget and
// stakeholder bonuses are added before the division.
func frameworkRisk(desc string, p model.ProjectData) float64 {
	sum, applicable := 0.0, 0
	for _, f := range frameworks {
		if containsAny(desc, f.keywords) {
			sum += f.risk
			applicable++
		}
	}
	switch {
	case p.Budget > 50_000_000:
		sum += 0.3
	case p.Budget > 20_000_000:
		sum += 0.2
	}
	if len(p.Stakeholders) > 15 {
		sum += 0.2
	}
	return math.Min(sum/float64(max(applicable, 1)), 1)
}

func licenseRisk(desc string, timelineDays int) float64 {
	risk := 0.4 +
		float64(countKeywords(desc, licenseKeywords))*0.3 +
		float64(countKeywords(desc, crossBorderLicenseKeywords))*0.4
	if timelineDays > 730 {
		risk += 0.2
	}
	return math.Min(risk, 1)
}

func regulatoryDataRisk(desc string, deps []string) float64 {
	risk := 0.3 +
		float64(countKeywords(desc, personalDataKeywords))*0.2 +
		float64(countKeywords(desc, customerChannelKeywords))*0.3
	for _, dep := range deps {
		if containsAny(dep, offshoreDependencyTerms) {
			risk += 0.4
			break
		}
	}
	return math.Min(risk, 1)
}

func auditRisk(techs []string, p model.ProjectData) float64 {
	risk := 0.5
	if p.ComplexityScore > 0.7 {
		risk += 0.2
	}
	if len(p.Dependencies) > 8 {
		risk += 0.2
	}
	for _, tech := range techs {
		if containsAny(tech, auditedTechKeywords) {
			risk += 0.1
		}
	}
	return math.Min(risk, 1)
}

func policyRisk(p model.ProjectData) float64 {
	risk := 0.4
	if len(p.Stakeholders) > 10 {
		risk += 0.2
	}
	for _, h := range p.HistoricalRisks {
		if containsAny(strings.ToLower(h), complianceHistoryTerms) {
			risk += 0.3
			break
		}
	}
	return math.Min(risk, 1)
}
