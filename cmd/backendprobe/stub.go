package main

import (
	"backendprobe/pkg/log"
	"backendprobe/pkg/server"
	"backendprobe/pkg/users"

	"github.com/spf13/cobra"
)

func newServeStubCmd(opts *globalOptions) *cobra.Command {
	var (
		addr   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Run a local backend implementing /health and registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stubCfg := opts.cfg.Stub
			if cmd.Flags().Changed("addr") {
				stubCfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				stubCfg.Database = dbPath
			}

			store, err := users.NewStore(stubCfg.Database, 0)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					log.Warn().Err(closeErr).Msg("Failed to close user store")
				}
			}()

			log.Info().Str("database", stubCfg.Database).Msg("User store opened")

			return server.NewStubServer(store, server.Version, stubCfg.TokenTTL).Start(stubCfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default in-memory)")
	return cmd
}
