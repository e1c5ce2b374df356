// Package logx provides the process-wide structured logger shared by setup,
// prover and verifier, mirroring gnark's backend/logger wrapper around
// zerolog.
package logx

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

func initLogger() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

// Logger returns the shared logger instance.
func Logger() *zerolog.Logger {
	once.Do(initLogger)
	return &logger
}

// Set overrides the shared logger, e.g. to redirect output or change level.
func Set(l zerolog.Logger) {
	once.Do(func() {})
	logger = l
}

// Disable silences all output.
func Disable() {
	Set(zerolog.New(os.Stderr).Level(zerolog.Disabled))
}
