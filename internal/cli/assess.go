package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/telerisk/internal/adapters/render"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
)

type assessFlags struct {
	projectID    string
	description  string
	budget       float64
	timelineDays int
	complexity   float64
	technologies string
	stakeholders string
	dependencies string
	sectors      string
}

func newAssessCommand(rt *cliState) *cobra.Command {
	var f assessFlags
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess project risk across all relevant sectors",
		Example: `  telerisk assess --project-id NET-7 --description "Fiber backbone upgrade" \
    --budget 25000000 --timeline-days 540 --technologies "5G NR,Fiber Optic"`,
		Args: cobra.NoArgs,
	}
	output := outputFlag(cmd)

	fl := cmd.Flags()
	fl.StringVar(&f.projectID, "project-id", "", "project identifier")
	fl.StringVar(&f.description, "description", "", "project description")
	fl.Float64Var(&f.budget, "budget", 0, "project budget in AED")
	fl.IntVar(&f.timelineDays, "timeline-days", 0, "project timeline in days")
	fl.Float64Var(&f.complexity, "complexity", 0.5, "complexity score (0.0-1.0)")
	fl.StringVar(&f.technologies, "technologies", "", "comma-separated technologies (default \"General IT\")")
	fl.StringVar(&f.stakeholders, "stakeholders", "", "comma-separated stakeholders (default \"Project Team\")")
	fl.StringVar(&f.dependencies, "dependencies", "", "comma-separated dependencies")
	fl.StringVar(&f.sectors, "sectors", "", "comma-separated sector ids to assess instead of the relevant ones")
	for _, name := range []string{"project-id", "description", "budget", "timeline-days"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		format, err := parseOutput(*output)
		if err != nil {
			return err
		}
		p := model.ProjectData{
			ProjectID:       f.projectID,
			SectorID:        "general",
			Description:     f.description,
			Budget:          f.budget,
			TimelineDays:    f.timelineDays,
			ComplexityScore: f.complexity,
			Stakeholders:    splitList(f.stakeholders, "Project Team"),
			Technologies:    splitList(f.technologies, "General IT"),
			Dependencies:    splitList(f.dependencies),
		}
		rep, err := rt.svc.AssessProject(cmd.Context(), p, splitList(f.sectors))
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), format, rep)
	}
	return cmd
}

func newSampleCommand(rt *cliState) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Run an assessment on a sample project",
		Args:  cobra.NoArgs,
	}
	output := outputFlag(cmd)
	cmd.Flags().StringVar(&kind, "project-type", "network_upgrade", "sample kind: network_upgrade, cybersecurity_enhancement or customer_portal")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		format, err := parseOutput(*output)
		if err != nil {
			return err
		}
		p, err := rt.svc.SampleProject(kind)
		if err != nil {
			return err
		}
		rep, err := rt.svc.AssessProject(cmd.Context(), p, nil)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if format == render.FormatSummary {
			fmt.Fprintf(w, "Sample Project Assessment: %s\n", render.Title(kind))
			fmt.Fprintln(w, strings.Repeat("=", 60))
		}
		return writeReport(w, format, rep)
	}
	return cmd
}

func writeReport(w io.Writer, f render.Format, rep *report.Report) error {
	if f == render.FormatSummary {
		render.Summary(w, rep)
		return nil
	}
	return render.Encode(w, f, rep.Document())
}
