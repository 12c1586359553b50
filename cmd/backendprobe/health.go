package main

import (
	"encoding/json"
	"io"

	"backendprobe/pkg/models"
	"backendprobe/pkg/view"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Run one health check (Test Connection)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := opts.newProbe()
			if err != nil {
				return err
			}

			state := flows.CheckHealth(cmd.Context())
			return printState(cmd.OutOrStdout(), state, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resulting state as JSON")
	return cmd
}

// printState writes the state and maps a disconnected result to errProbeFailed.
func printState(out io.Writer, state models.ConnectionState, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		if err := encoder.Encode(state); err != nil {
			return err
		}
	} else {
		opts := view.OptionsFor(out)
		opts.ShowKind = true
		if err := view.Render(out, state, opts); err != nil {
			return err
		}
	}

	if !state.IsConnected {
		return errProbeFailed
	}
	return nil
}
