package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scmutil/internal/deps"
)

func newHasCommand(ctx *commandContext) *cobra.Command {
	var noWarn bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "has <name> [args...]",
		Short: "Report whether a command runs successfully",
		Long: "Runs the command once (with the configured default arguments unless\n" +
			"arguments are given) and reports whether it exited with status zero.\n" +
			"Exits with status 1 when the command is unavailable.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prober, closeLog, err := ctx.prober(cmd, deps.WithTimeout(timeout))
			if err != nil {
				return err
			}
			defer closeLog()

			var opts []deps.ProbeOption
			if len(args) > 1 {
				opts = append(opts, deps.Args(args[1:]...))
			}
			if noWarn || !cfg.Probe.Warn {
				opts = append(opts, deps.NoWarn())
			}

			name := args[0]
			ok, err := prober.HasCommand(ctx.runContext(cmd), name, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: available=%s\n", name, yesNo(ok))
			if !ok {
				return errUnavailable
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&noWarn, "no-warn", false, "Do not emit a tool-not-found warning")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override the configured probe timeout")
	return cmd
}

func newRequireCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "require <name>...",
		Short: "Fail unless every named command runs successfully",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, closeLog, err := ctx.prober(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			runCtx := ctx.runContext(cmd)
			for _, name := range args {
				if err := prober.RequireCommand(runCtx, name); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All %d required commands available\n", len(args))
			return nil
		},
	}
}
