package main

import (
	"errors"
	"os"

	"backendprobe/pkg/log"
)

func main() {
	// Initialize logger
	_ = log.Logger

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errProbeFailed) {
			log.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
