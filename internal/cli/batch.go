package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/telerisk/internal/adapters/render"
	"github.com/okian/telerisk/internal/domain/batch"
)

// ErrEmptyBatchFile is returned when a batch file holds no requests.
var ErrEmptyBatchFile = errors.New("batch file has no projects")

func newBatchCommand(rt *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Assess every project listed in a YAML or JSON file",
		Long: `Assess every project listed in a YAML or JSON file on the worker pool.

The file holds a list of requests, each with a project and an optional
sector filter:

  - project:
      project_id: NET-1
      description: Fiber backbone upgrade
      budget: 25000000
      timeline_days: 540
      complexity_score: 0.7
      stakeholders: [Etisalat]
      technologies: [Fiber Optic]
    sectors: [network_infrastructure]`,
		Args: cobra.ExactArgs(1),
	}
	output := outputFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := parseOutput(*output)
		if err != nil {
			return err
		}
		reqs, err := readBatchFile(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := rt.svc.Start(ctx); err != nil {
			return err
		}
		defer rt.svc.Stop()

		res, err := rt.svc.AssessBatch(ctx, reqs)
		if err != nil {
			return err
		}
		if format == render.FormatSummary {
			render.BatchSummary(cmd.OutOrStdout(), res)
			return nil
		}
		return render.Encode(cmd.OutOrStdout(), format, render.Batch(res))
	}
	return cmd
}

// readBatchFile parses a YAML (or JSON, a YAML subset) list of requests.
func readBatchFile(path string) ([]batch.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var reqs []batch.Request
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBatchFile, path)
	}
	return reqs, nil
}
