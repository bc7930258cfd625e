package risk

import (
	"sort"
	"strings"

	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/sectors"
)

const (
	relevanceTopN          = 3
	relevanceHighThreshold = 3
)

// sectorKeywords drive the relevance heuristic. They are independent of the
// catalog so a sector may be scored even when its keywords never match.
var sectorKeywords = map[string][]string{
	"network_infrastructure": {
		"network", "infrastructure", "fiber", "tower", "equipment",
		"hardware", "connectivity", "transmission", "switching",
	},
	"cybersecurity": {
		"security", "cybersecurity", "cyber", "protection", "firewall",
		"encryption", "threat", "vulnerability", "incident",
	},
	"regulatory_compliance": {
		"compliance", "regulation", "regulatory", "license", "legal",
		"policy", "audit", "standard", "certification",
	},
	"it_software_development": {
		"software", "development", "programming", "system", "integration",
		"application", "platform", "database", "api",
	},
	"telecom_services": {
		"service", "voice", "data", "internet", "mobile", "broadband",
		"telecommunication", "subscriber", "billing",
	},
	"customer_service_delivery": {
		"customer", "support", "service delivery", "helpdesk", "portal",
		"experience", "satisfaction", "call center",
	},
	"supply_chain_management": {
		"procurement", "vendor", "supplier", "logistics", "inventory",
		"sourcing", "contract", "delivery",
	},
	"marketing_sales": {
		"marketing", "sales", "campaign", "promotion", "advertising",
		"customer acquisition", "revenue", "pricing",
	},
	"human_resources": {
		"training", "staff", "employee", "recruitment", "workforce",
		"skills", "performance", "human resources",
	},
	"research_development": {
		"research", "development", "innovation", "r&d", "prototype",
		"pilot", "testing", "experiment", "technology development",
	},
}

// mandatorySectors are assessed for every project.
var mandatorySectors = []string{sectors.CybersecurityID, sectors.RegulatoryComplianceID}

type relevance struct {
	id    string
	score int
}

// RelevantSectors picks the sectors to assess. A non-empty filter is returned
// unchanged. Otherwise sectors are ranked by keyword hits in the description
// and technologies (ties by id); the top three, any other with at least three
// hits, and the mandatory sectors are selected.
func RelevantSectors(p model.ProjectData, filter []string) []string {
	if len(filter) > 0 {
		return append([]string(nil), filter...)
	}

	desc := strings.ToLower(p.Description)
	techs := make([]string, len(p.Technologies))
	for i, t := range p.Technologies {
		techs[i] = strings.ToLower(t)
	}

	var scored []relevance
	for id, keywords := range sectorKeywords {
		score := hits(desc, keywords)
		for _, tech := range techs {
			score += hits(tech, keywords)
		}
		if score > 0 {
			scored = append(scored, relevance{id: id, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})

	result := make([]string, 0, len(scored)+len(mandatorySectors))
	for i, r := range scored {
		if i < relevanceTopN || r.score >= relevanceHighThreshold {
			result = append(result, r.id)
		}
	}
	for _, id := range mandatorySectors {
		if !contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}

func hits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
