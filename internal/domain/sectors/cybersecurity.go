package sectors

import (
	"context"
	"math"
	"strings"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

var securityControls = []weightedTerm{
	{"firewall", 0.3},
	{"intrusion_detection", 0.4},
	{"encryption", 0.5},
	{"multi_factor_authentication", 0.4},
	{"security_training", 0.3},
	{"vulnerability_management", 0.5},
	{"backup_systems", 0.4},
	{"incident_response", 0.4},
	{"access_controls", 0.4},
	{"security_monitoring", 0.5},
}

var riskyTechnologies = []weightedTerm{
	{"cloud_services", 0.4},
	{"iot_devices", 0.6},
	{"mobile_apps", 0.5},
	{"apis", 0.5},
	{"third_party_integrations", 0.6},
	{"legacy_systems", 0.8},
}

var (
	exposureKeywords      = []string{"internet-facing", "public", "external", "customer-facing"}
	sensitiveKeywords     = []string{"personal data", "customer information", "financial", "critical infrastructure"}
	internationalKeywords = []string{"international", "cross-border", "global", "offshore"}
	emergingTechKeywords  = []string{"ai", "machine learning", "blockchain", "5g", "edge computing"}
	dataKeywords          = []string{"database", "customer data", "personal information", "analytics", "reporting"}
)

// minimalControls is the effectiveness assumed when no control is mentioned.
const minimalControls = 0.1

var cyberStrategies = []string{
	"Implement multi-layered security controls (Defense in Depth)",
	"Conduct regular security assessments and penetration testing",
	"Establish Security Operations Center (SOC) monitoring",
	"Deploy advanced threat detection and response systems",
	"Implement zero-trust network architecture",
	"Conduct regular security awareness training for all staff",
	"Establish incident response and business continuity plans",
	"Implement data encryption at rest and in transit",
	"Deploy endpoint detection and response (EDR) solutions",
	"Maintain up-to-date vulnerability management program",
	"Implement privileged access management controls",
	"Establish secure software development lifecycle (SDLC)",
	"Deploy network segmentation and micro-segmentation",
	"Implement continuous compliance monitoring",
	"Establish threat intelligence and information sharing",
}

var cyberBands = []riskBand{
	{0.8, []string{
		"URGENT: Conduct immediate security risk assessment",
		"Implement emergency incident response procedures",
		"Deploy advanced security monitoring and alerting",
		"Engage external cybersecurity expertise",
		"Review and strengthen access controls immediately",
	}},
	{0.6, []string{
		"Conduct comprehensive security audit",
		"Implement additional security controls",
		"Enhance security monitoring capabilities",
		"Provide targeted security training",
		"Review compliance with UAE regulations",
	}},
	{0.4, []string{
		"Maintain current security posture",
		"Schedule regular security reviews",
		"Update security policies and procedures",
		"Continue security awareness programs",
	}},
}

var cyberBaseline = []string{
	"Continue baseline security practices",
	"Monitor for emerging threats",
	"Maintain security documentation",
}

const (
	cyberMitigationLimit     = 12
	cyberRecommendationLimit = 8
)

// Cybersecurity scores threat exposure, compliance, technology and data risk,
// discounted by the security controls the project mentions.
type Cybersecurity struct {
	profile
}

// NewCybersecurity builds the cybersecurity variant.
func NewCybersecurity(s catalog.Sector) Scorer {
	return &Cybersecurity{profile{sector: s}}
}

func (c *Cybersecurity) Implemented() bool { return true }

func (c *Cybersecurity) Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return model.RiskAssessment{}, err
	}

	techs := lowerAll(p.Technologies)
	desc := strings.ToLower(p.Description)

	threat := threatRisk(desc, p)
	compliance := cyberComplianceRisk(desc)
	tech := technologySecurityRisk(techs)
	data := cyberDataRisk(desc, p)
	controls := controlsEffectiveness(desc, techs)

	total := BaseRisk(p)*0.2 + threat*0.25 + compliance*0.2 + tech*0.2 + data*0.15
	adjusted := total * (1 - controls*0.5)

	var factors []string
	if threat > 0.6 {
		factors = append(factors, "Cyber attacks", "System vulnerabilities")
	}
	if compliance > 0.6 {
		factors = append(factors, "Compliance violations")
	}
	if tech > 0.5 {
		factors = append(factors, "System vulnerabilities")
	}
	if data > 0.5 {
		factors = append(factors, "Data breaches")
	}
	factors = append(factors, "Insider threats")

	return c.assessment(c.scale(adjusted), dedupe(factors), Mitigations(cyberStrategies, cyberMitigationLimit), Confidence(p)), nil
}

func (c *Cybersecurity) Recommendations(a model.RiskAssessment) []string {
	return band(a.RiskLevel, cyberBands, cyberBaseline, cyberRecommendationLimit)
}

func threatRisk(desc string, p model.ProjectData) float64 {
	risk := 0.5 + float64(countKeywords(desc, exposureKeywords))*0.2
	switch {
	case p.Budget > 10_000_000:
		risk += 0.2
	case p.Budget > 5_000_000:
		risk += 0.1
	}
	if p.TimelineDays > 365 {
		risk += 0.1
	}
	return math.Min(risk, 1)
}

func cyberComplianceRisk(desc string) float64 {
	risk := 0.6 +
		float64(countKeywords(desc, sensitiveKeywords))*0.2 +
		float64(countKeywords(desc, internationalKeywords))*0.3
	return math.Min(risk, 1)
}

func technologySecurityRisk(techs []string) float64 {
	if len(techs) == 0 {
		return 0
	}
	risk := 0.0
	for _, tech := range techs {
		for _, t := range riskyTechnologies {
			if matchesTerm(tech, t.term) {
				risk += t.weight
			}
		}
	}
	// Each emerging keyword counts once however many technologies mention it.
	for _, kw := range emergingTechKeywords {
		for _, tech := range techs {
			if strings.Contains(tech, kw) {
				risk += 0.4
				break
			}
		}
	}
	return math.Min(risk/float64(len(techs)), 1)
}

func cyberDataRisk(desc string, p model.ProjectData) float64 {
	risk := 0.3 + float64(countKeywords(desc, dataKeywords))*0.2
	if len(p.Stakeholders) > 10 {
		risk += 0.2
	}
	if len(p.Dependencies) > 5 {
		risk += 0.1
	}
	return math.Min(risk, 1)
}

// controlsEffectiveness averages the effectiveness of every control matched
// per technology. A description match counts once for each technology.
func controlsEffectiveness(desc string, techs []string) float64 {
	sum, found := 0.0, 0
	for _, tech := range techs {
		for _, c := range securityControls {
			spaced := strings.ReplaceAll(c.term, "_", " ")
			if strings.Contains(desc, spaced) || matchesTerm(tech, c.term) {
				sum += c.weight
				found++
			}
		}
	}
	if found == 0 {
		return minimalControls
	}
	return math.Min(sum/float64(found), 1)
}

// dedupe drops repeated labels, keeping first-seen order.
func dedupe(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := labels[:0]
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
