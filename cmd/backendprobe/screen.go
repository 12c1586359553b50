package main

import (
	"context"
	"fmt"

	"backendprobe/pkg/screen"
	"backendprobe/pkg/state"
	"backendprobe/pkg/view"

	"github.com/spf13/cobra"
)

func newScreenCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screen",
		Short: "Interactive backend test screen",
		Long: `Opens the backend test screen. Each "test" or "register" command
starts one request in the background; results are drawn as they arrive.
Type "help" for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := opts.newProbe()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			owner := state.New()
			go owner.Run(ctx)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend: %s\n", opts.cfg.Backend.BaseURL)

			testScreen := screen.New(flows, owner, opts.cfg.Form.Input())
			return testScreen.Interact(ctx, cmd.InOrStdin(), out, view.OptionsFor(out))
		},
	}
}
