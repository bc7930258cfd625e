package service

import (
	"fmt"
	"sort"

	"github.com/okian/telerisk/internal/domain/model"
)

// Sample project kinds.
const (
	SampleNetworkUpgrade           = "network_upgrade"
	SampleCybersecurityEnhancement = "cybersecurity_enhancement"
	SampleCustomerPortal           = "customer_portal"
)

var samples = map[string]func() model.ProjectData{
	SampleNetworkUpgrade: func() model.ProjectData {
		return model.ProjectData{
			ProjectID:       "UAE_NET_2024_001",
			SectorID:        "network_infrastructure",
			Description:     "5G network infrastructure upgrade across Dubai and Abu Dhabi, including new cell towers, fiber optic cables, and core network equipment replacement",
			Budget:          75_000_000,
			TimelineDays:    548,
			ComplexityScore: 0.8,
			Stakeholders:    []string{"Etisalat", "du", "UAE Ministry of Energy", "Dubai Municipality", "Abu Dhabi Government"},
			Technologies:    []string{"5G NR", "Fiber Optic", "Massive MIMO", "Network Function Virtualization", "Edge Computing"},
			Dependencies:    []string{"Spectrum allocation", "Site permits", "Environmental approvals", "Vendor contracts"},
		}
	},
	SampleCybersecurityEnhancement: func() model.ProjectData {
		return model.ProjectData{
			ProjectID:       "UAE_SEC_2024_002",
			SectorID:        "cybersecurity",
			Description:     "Comprehensive cybersecurity enhancement for critical telecom infrastructure including AI-powered threat detection, zero-trust architecture, and compliance with UAE Cyber Security Law",
			Budget:          25_000_000,
			TimelineDays:    365,
			ComplexityScore: 0.7,
			Stakeholders:    []string{"UAE Cyber Security Council", "Telecom operators", "Critical infrastructure providers"},
			Technologies:    []string{"AI-powered security", "Zero-trust architecture", "SIEM", "Threat intelligence", "Endpoint protection"},
			Dependencies:    []string{"Security clearances", "Compliance audits", "Staff training", "Vendor assessments"},
		}
	},
	SampleCustomerPortal: func() model.ProjectData {
		return model.ProjectData{
			ProjectID:       "UAE_CUS_2024_003",
			SectorID:        "customer_service_delivery",
			Description:     "Digital customer self-service portal with AI chatbot, mobile app, and integrated billing system for improved customer experience",
			Budget:          15_000_000,
			TimelineDays:    273,
			ComplexityScore: 0.6,
			Stakeholders:    []string{"Customer service teams", "IT development", "Marketing", "Billing department"},
			Technologies:    []string{"React Native", "AI Chatbot", "Cloud services", "API Gateway", "Analytics platform"},
			Dependencies:    []string{"Customer data migration", "Payment gateway integration", "App store approvals", "User testing"},
		}
	},
}

// SampleKinds lists the available sample project kinds in sorted order.
func SampleKinds() []string {
	kinds := make([]string, 0, len(samples))
	for k := range samples {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// SampleProject returns a fresh demonstration project of the given kind.
func (s *Service) SampleProject(kind string) (model.ProjectData, error) {
	build, ok := samples[kind]
	if !ok {
		return model.ProjectData{}, fmt.Errorf("%w: %s. Available: %v", ErrUnknownSample, kind, SampleKinds())
	}
	return build(), nil
}
