package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scmutil/internal/config"
	"scmutil/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the configured external tools are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prober, closeLog, err := ctx.prober(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			statuses, err := deps.CheckBinaries(ctx.runContext(cmd), prober, requirementsFromConfig(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writeCheckResults(out, statuses, asJSON, shouldColorize(out)); err != nil {
				return err
			}

			missing := deps.MissingRequired(statuses)
			if len(missing) == 0 {
				return nil
			}
			names := make([]string, 0, len(missing))
			for _, s := range missing {
				names = append(names, s.Name)
			}
			return fmt.Errorf("required tools unavailable: %s", strings.Join(names, ", "))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}

func requirementsFromConfig(cfg *config.Config) []deps.Requirement {
	reqs := make([]deps.Requirement, 0, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		reqs = append(reqs, deps.Requirement{
			Name:        tool.Name,
			Command:     tool.Command,
			Args:        tool.Args,
			Description: tool.Description,
			Optional:    tool.Optional,
		})
	}
	return reqs
}
