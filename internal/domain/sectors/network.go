package sectors

import (
	"context"
	"math"
	"strings"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

type weightedTerm struct {
	term   string
	weight float64
}

var infrastructureComponents = []weightedTerm{
	{"fiber_optic", 0.3},
	{"cellular_towers", 0.4},
	{"data_centers", 0.5},
	{"switches_routers", 0.4},
	{"transmission_equipment", 0.3},
	{"power_systems", 0.6},
	{"cooling_systems", 0.4},
	{"security_systems", 0.3},
}

// Technology age buckets, checked in order.
var (
	legacyTerms   = []string{"legacy", "old", "deprecated"}
	emergingTerms = []string{"new", "emerging", "beta", "cutting-edge"}
	frontierTerms = []string{"5g", "ai", "iot", "edge"}
)

const (
	ageLegacy   = 0.8
	ageEmerging = 0.6
	ageCurrent  = 0.2
)

var (
	outdoorKeywords  = []string{"tower", "outdoor", "external", "field", "installation"}
	capacityKeywords = []string{"scaling", "expansion", "upgrade", "capacity", "bandwidth"}
)

var networkStrategies = []string{
	"Implement redundant network paths and equipment",
	"Regular maintenance and equipment health monitoring",
	"Environmental protection systems for outdoor equipment",
	"Capacity planning and traffic management",
	"Technology refresh cycles and upgrade planning",
	"Network performance monitoring and alerting",
	"Emergency response procedures for infrastructure failures",
	"Backup power systems and uninterruptible power supplies",
	"Climate control systems for equipment rooms",
	"Network security hardening and access controls",
}

var networkBands = []riskBand{
	{0.7, []string{
		"Conduct immediate infrastructure vulnerability assessment",
		"Implement comprehensive disaster recovery procedures",
		"Establish 24/7 network operations center monitoring",
	}},
	{0.5, []string{
		"Schedule preventive maintenance for critical equipment",
		"Review and update capacity planning models",
		"Implement enhanced environmental monitoring",
	}},
}

var networkBaseline = []string{
	"Continue regular monitoring and maintenance schedules",
	"Plan for future technology upgrades",
	"Maintain current redundancy levels",
}

const networkMitigationLimit = 10

// NetworkInfrastructure scores physical network exposure in the UAE climate.
type NetworkInfrastructure struct {
	profile
}

// NewNetworkInfrastructure builds the network infrastructure variant.
func NewNetworkInfrastructure(s catalog.Sector) Scorer {
	return &NetworkInfrastructure{profile{sector: s}}
}

func (n *NetworkInfrastructure) Implemented() bool { return true }

// Assess combines base, infrastructure, environmental, technology age and
// capacity risk.
func (n *NetworkInfrastructure) Assess(ctx context.Context, p model.ProjectData) (model.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return model.RiskAssessment{}, err
	}

	techs := lowerAll(p.Technologies)
	desc := strings.ToLower(p.Description)

	infra := infrastructureRisk(techs, p.ComplexityScore)
	env := environmentalRisk(desc, p.TimelineDays)
	tech := technologyAgeRisk(techs)
	capacity := capacityRisk(desc, p)

	total := BaseRisk(p)*0.3 + infra*0.25 + env*0.2 + tech*0.15 + capacity*0.1

	var factors []string
	if infra > 0.5 {
		factors = append(factors, "Equipment failure")
	}
	if env > 0.4 {
		factors = append(factors, "Infrastructure damage")
	}
	if tech > 0.5 {
		factors = append(factors, "Technology obsolescence")
	}
	if capacity > 0.4 {
		factors = append(factors, "Capacity limitations")
	}
	factors = append(factors, "Network congestion")

	return n.assessment(n.scale(total), factors, Mitigations(networkStrategies, networkMitigationLimit), Confidence(p)), nil
}

func (n *NetworkInfrastructure) Recommendations(a model.RiskAssessment) []string {
	return band(a.RiskLevel, networkBands, networkBaseline, 0)
}

func infrastructureRisk(techs []string, complexity float64) float64 {
	score := 0.0
	for _, tech := range techs {
		for _, c := range infrastructureComponents {
			if matchesTerm(tech, c.term) {
				score += c.weight
			}
		}
	}
	score *= 1 + complexity*0.5
	return math.Min(score/float64(len(infrastructureComponents)), 1)
}

func environmentalRisk(desc string, timelineDays int) float64 {
	exposure := math.Min(float64(timelineDays)/timelineNorm, 2)
	risk := 0.4 + exposure*0.1 + float64(countKeywords(desc, outdoorKeywords))*0.2
	return math.Min(risk, 1)
}

func technologyAgeRisk(techs []string) float64 {
	if len(techs) == 0 {
		return 0
	}
	risk := 0.0
	for _, tech := range techs {
		switch {
		case containsAny(tech, legacyTerms):
			risk += ageLegacy
		case containsAny(tech, emergingTerms), containsAny(tech, frontierTerms):
			risk += ageEmerging
		default:
			risk += ageCurrent
		}
	}
	return math.Min(risk/float64(len(techs)), 1)
}

func capacityRisk(desc string, p model.ProjectData) float64 {
	risk := 0.3
	if p.Budget > 5_000_000 {
		risk += 0.2
	}
	if len(p.Dependencies) > 5 {
		risk += 0.3
	}
	risk += float64(countKeywords(desc, capacityKeywords)) * 0.1
	return math.Min(risk, 1)
}
