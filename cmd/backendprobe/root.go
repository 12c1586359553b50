package main

import (
	"errors"
	"fmt"
	"time"

	"backendprobe/pkg/client"
	"backendprobe/pkg/config"
	"backendprobe/pkg/log"
	"backendprobe/pkg/probe"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// errProbeFailed makes the process exit non-zero once the failed state has
// already been printed.
var errProbeFailed = errors.New("probe failed")

type globalOptions struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	debug      bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "backendprobe",
		Short: "Exercise a backend's health and registration endpoints",
		Long: `backendprobe checks that a backend is reachable and that user
registration works, rendering the result as a connection indicator and
a status message.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "Backend base URL")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "Per-request timeout")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newHealthCmd(opts),
		newRegisterCmd(opts),
		newScreenCmd(opts),
		newServeStubCmd(opts),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("backendprobe version %s\n", version))

	return rootCmd
}

// load builds the effective config: file first, then explicitly set flags.
func (o *globalOptions) load(cmd *cobra.Command) error {
	cfg := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Backend.BaseURL = o.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Backend.Timeout = o.timeout
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = o.debug
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	config.Normalize(cfg)

	if cfg.Log.Debug {
		log.SetDebugMode()
		log.Debug().Msg("Debug mode enabled")
	}

	log.Debug().
		Str("base_url", cfg.Backend.BaseURL).
		Dur("timeout", cfg.Backend.Timeout).
		Msg("Configuration loaded")

	o.cfg = cfg
	return nil
}

func (o *globalOptions) newProbe() (*probe.Probe, error) {
	backend, err := client.New(o.cfg.Backend.BaseURL, o.cfg.Backend.Timeout)
	if err != nil {
		return nil, err
	}
	return probe.New(backend), nil
}
