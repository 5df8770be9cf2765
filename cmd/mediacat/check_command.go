package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mediacat/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [INPUT...]",
		Short: "Verify directories, input files and series API access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, args)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderSectionHeader("Preflight", colorize))
			for _, r := range results {
				kind := statusError
				switch {
				case r.Skipped:
					kind = statusSkip
				case r.Passed:
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
