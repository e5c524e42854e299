package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// initLogger builds the diagnostic logger. Verbose runs log at debug level,
// others only warnings. With a log file, JSON lines go there instead of stderr.
func initLogger(verbose bool, logFilePath string, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		return zerolog.New(file).Level(level).With().Timestamp().Logger(), file, nil
	}

	output := zerolog.ConsoleWriter{Out: stderr, NoColor: true}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), io.NopCloser(nil), nil
}
