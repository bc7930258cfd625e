// Package cli implements the telerisk command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/telerisk/internal/adapters/render"
	service "github.com/okian/telerisk/internal/app"
	"github.com/okian/telerisk/internal/config"
	"github.com/okian/telerisk/pkg/logger"
)

const version = "0.1.0"

// cliState holds what every subcommand needs once the root pre-run finished.
type cliState struct {
	logLevel string
	logOut   io.Writer
	svc      *service.Service
}

// NewRootCommand builds the telerisk command tree. Logs go to stderr; reports
// go to the command's output writer.
func NewRootCommand() *cobra.Command {
	rt := &cliState{logOut: os.Stderr}

	root := &cobra.Command{
		Use:   "telerisk",
		Short: "Sector-aware risk assessment for UAE telecom projects",
		Long: `telerisk scores a telecom project across the configured business sectors,
combines the sector scores into a weighted overall risk and ranks the
risk factors and mitigation recommendations that matter most.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides TELERISK_LOG_LEVEL")

	root.AddCommand(
		newAssessCommand(rt),
		newSampleCommand(rt),
		newSectorsCommand(rt),
		newContextCommand(rt),
		newBatchCommand(rt),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (rt *cliState) setup(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(rt.logOut)); err != nil {
		return err
	}
	level := cfg.LogLevel
	if rt.logLevel != "" {
		level = rt.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	svc, err := service.FromConfig(ctx, cfg, service.WithLogger(logger.Named("cli")))
	if err != nil {
		return err
	}
	rt.svc = svc
	return nil
}

// outputFlag registers --output on cmd and returns its target.
func outputFlag(cmd *cobra.Command) *string {
	var out string
	cmd.Flags().StringVarP(&out, "output", "o", string(render.FormatSummary), "output format: summary, json or yaml")
	return &out
}

// splitList parses a comma separated flag, trimming blanks. Empty input yields def.
func splitList(raw string, def ...string) []string {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func parseOutput(raw string) (render.Format, error) {
	f, err := render.ParseFormat(raw)
	if err != nil {
		return "", fmt.Errorf("--output: %w", err)
	}
	return f, nil
}
