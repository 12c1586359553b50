package main

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *globalOptions) *cobra.Command {
	var (
		email    string
		password string
		name     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register one user (Register Test User)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := opts.newProbe()
			if err != nil {
				return err
			}

			input := opts.cfg.Form.Input()
			flags := cmd.Flags()
			if flags.Changed("email") {
				input.Email = email
			}
			if flags.Changed("password") {
				input.Password = password
			}
			if flags.Changed("name") {
				input.Name = name
			}

			state := flows.RegisterUser(cmd.Context(), input)
			return printState(cmd.OutOrStdout(), state, asJSON)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email to register (default from config form)")
	cmd.Flags().StringVar(&password, "password", "", "Password to register (default from config form)")
	cmd.Flags().StringVar(&name, "name", "", "Display name to register (default from config form)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resulting state as JSON")
	return cmd
}
