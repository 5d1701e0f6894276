package main

import (
	"strings"

	"github.com/spf13/cobra"

	"scmutil/internal/logging"
	"scmutil/internal/mimefile"
)

func newMimeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mime <path|->",
		Short: "Print the key/value pairs of a pseudo-MIME metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			logger = logging.WithContext(ctx.runContext(cmd), logger)

			var data map[string]string
			if path := strings.TrimSpace(args[0]); path == "-" {
				data, err = mimefile.Read(cmd.InOrStdin(), "<stdin>", logger)
			} else {
				data, err = mimefile.ReadFile(path, logger)
			}
			if err != nil {
				return err
			}
			return writeMimeData(cmd.OutOrStdout(), data, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the mapping as JSON")
	return cmd
}
