package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	service "github.com/okian/telerisk/internal/app"
	"github.com/okian/telerisk/internal/domain/report"
)

const (
	barCells            = 20
	summaryFactorLimit  = 3
	summaryTopRisks     = 5
	summaryRecommends   = 8
	escalateThreshold   = 0.7
	monitoringThreshold = 0.4
)

var (
	redColor    = color.New(color.FgRed, color.Bold)
	yellowColor = color.New(color.FgYellow, color.Bold)
	cyanColor   = color.New(color.FgCyan, color.Bold)
	greenColor  = color.New(color.FgGreen, color.Bold)
	headerColor = color.New(color.FgMagenta, color.Bold)
)

// riskColor picks the display color for a risk level.
func riskColor(risk float64) *color.Color {
	switch {
	case risk >= 0.8:
		return redColor
	case risk >= 0.6:
		return yellowColor
	case risk >= 0.4:
		return cyanColor
	default:
		return greenColor
	}
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

// Bar draws a fixed-width bar filled in proportion to risk.
func Bar(risk float64) string {
	filled := int(barCells * risk)
	filled = max(0, min(barCells, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// Title turns a snake_case id into space separated title case.
func Title(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Summary writes a human readable report with colored risk levels.
func Summary(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "\nProject: %s\n", rep.Project.ProjectID)
	fmt.Fprintf(w, "Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprint(w, "\nOverall Risk Level: ")
	riskColor(rep.OverallRisk).Fprintf(w, "%s (%s)\n", percent(rep.OverallRisk), rep.Category)
	fmt.Fprintf(w, "Risk Bar: [%s]\n", Bar(rep.OverallRisk))

	fmt.Fprintln(w, "\nSector Risk Assessment:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	ids := make([]string, 0, len(rep.Assessments))
	for id := range rep.Assessments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := rep.Assessments[id]
		fmt.Fprintf(w, "%-25s", Title(id))
		riskColor(a.RiskLevel).Fprintln(w, percent(a.RiskLevel))
		if len(a.RiskFactors) > 0 {
			factors := a.RiskFactors[:min(summaryFactorLimit, len(a.RiskFactors))]
			fmt.Fprintf(w, "  Risk Factors: %s\n", strings.Join(factors, ", "))
		}
	}

	if len(rep.TopRisks) > 0 {
		fmt.Fprintln(w, "\nTop Risk Factors:")
		fmt.Fprintln(w, strings.Repeat("-", 20))
		for i, r := range rep.TopRisks[:min(summaryTopRisks, len(rep.TopRisks))] {
			fmt.Fprintf(w, "%d. %s ", i+1, r.Text)
			riskColor(r.RiskLevel).Fprintf(w, "(%s, %s)\n", r.Sector, percent(r.RiskLevel))
		}
	}

	if len(rep.PriorityRecommendations) > 0 {
		fmt.Fprintln(w, "\nPriority Recommendations:")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for i, r := range rep.PriorityRecommendations[:min(summaryRecommends, len(rep.PriorityRecommendations))] {
			fmt.Fprintf(w, "%d. %s\n", i+1, r.Text)
			fmt.Fprintf(w, "   → %s (Risk: %s)\n", r.Sector, percent(r.RiskLevel))
		}
	}

	fmt.Fprintln(w, "\nUAE Regulatory Guidance:")
	fmt.Fprintln(w, strings.Repeat("-", 25))
	for _, line := range Guidance(rep.OverallRisk) {
		fmt.Fprintf(w, "• %s\n", line)
	}
}

// Guidance returns the regulatory advice for an overall risk level.
func Guidance(overall float64) []string {
	switch {
	case overall > escalateThreshold:
		return []string{
			"Contact UAE Telecommunications Regulatory Authority (TRA)",
			"Consider engaging UAE cybersecurity consultants",
			"Review compliance with UAE Cyber Security Law",
		}
	case overall > monitoringThreshold:
		return []string{
			"Ensure compliance monitoring is in place",
			"Consider periodic regulatory reviews",
		}
	default:
		return []string{
			"Maintain standard compliance procedures",
			"Continue monitoring regulatory updates",
		}
	}
}

// BatchSummary writes one summary per assessed item and a line per failure.
func BatchSummary(w io.Writer, res *service.BatchResult) {
	headerColor.Fprintf(w, "Batch %s (%d projects)\n", res.BatchID, len(res.Results))
	for _, r := range res.Results {
		switch {
		case r.Report != nil:
			Summary(w, r.Report)
		case r.Duplicate:
			yellowColor.Fprintf(w, "\n#%d %s: skipped duplicate\n", r.Index+1, r.ProjectID)
		case r.Err != nil:
			redColor.Fprintf(w, "\n#%d %s: %v\n", r.Index+1, r.ProjectID, r.Err)
		}
	}
}

// Sectors lists the configured sectors and whether each has a dedicated scorer.
func Sectors(w io.Writer, info []service.SectorInfo) {
	headerColor.Fprintln(w, "UAE Telecom Sectors")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	for _, s := range info {
		fmt.Fprintf(w, "\n%s (%s)\n", s.Name, s.ID)
		if s.Implemented {
			greenColor.Fprintln(w, "  Status: ✓ Implemented")
		} else {
			yellowColor.Fprintln(w, "  Status: ⚠ Placeholder")
		}
		fmt.Fprintf(w, "  Weight: %s\n", percent(s.Weight))
		fmt.Fprintf(w, "  Description: %s\n", s.Description)
		fmt.Fprintf(w, "  Risk Factors: %d\n", s.RiskFactorsCount)
	}
}

// Context writes the regulatory environment, tolerance levels and sector weights.
func Context(w io.Writer, uae service.UAEContext) {
	headerColor.Fprintln(w, "UAE Telecom Context")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	reg := uae.RegulatoryEnvironment
	fmt.Fprintf(w, "\nPrimary Regulator: %s\n", reg.PrimaryRegulator)
	fmt.Fprintln(w, "\nKey Legal Frameworks:")
	for _, law := range reg.KeyLaws {
		fmt.Fprintf(w, "  • %s\n", law)
	}
	fmt.Fprintln(w, "\nEmergency Contacts:")
	for _, c := range reg.EmergencyContacts {
		fmt.Fprintf(w, "  • %s\n", c)
	}

	levels := make([]string, 0, len(uae.RiskTolerance))
	for k := range uae.RiskTolerance {
		levels = append(levels, k)
	}
	sort.Slice(levels, func(i, j int) bool {
		a, b := uae.RiskTolerance[levels[i]], uae.RiskTolerance[levels[j]]
		if a != b {
			return a > b
		}
		return levels[i] < levels[j]
	})
	fmt.Fprintln(w, "\nRisk Tolerance Levels:")
	for _, k := range levels {
		fmt.Fprintf(w, "  • %s: %s\n", Title(k), percent(uae.RiskTolerance[k]))
	}

	ids := make([]string, 0, len(uae.SectorsOverview))
	for id := range uae.SectorsOverview {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := uae.SectorsOverview[ids[i]].Weight, uae.SectorsOverview[ids[j]].Weight
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	fmt.Fprintln(w, "\nSector Weights:")
	for _, id := range ids {
		s := uae.SectorsOverview[id]
		fmt.Fprintf(w, "  • %s: %s\n", s.Name, percent(s.Weight))
	}
}
