package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/telerisk/internal/adapters/render"
)

func newSectorsCommand(rt *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sectors",
		Short: "List all sectors with their weights and status",
		Args:  cobra.NoArgs,
	}
	output := outputFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		format, err := parseOutput(*output)
		if err != nil {
			return err
		}
		info := rt.svc.SectorInformation(cmd.Context())
		if format == render.FormatSummary {
			render.Sectors(cmd.OutOrStdout(), info)
			return nil
		}
		return render.Encode(cmd.OutOrStdout(), format, info)
	}
	return cmd
}

func newContextCommand(rt *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Show UAE telecom regulatory and business context",
		Args:  cobra.NoArgs,
	}
	output := outputFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		format, err := parseOutput(*output)
		if err != nil {
			return err
		}
		uae := rt.svc.UAEContext(cmd.Context())
		if format == render.FormatSummary {
			render.Context(cmd.OutOrStdout(), uae)
			return nil
		}
		return render.Encode(cmd.OutOrStdout(), format, uae)
	}
	return cmd
}
