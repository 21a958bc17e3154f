// Package telemetry provides the structured-logging adapter embedders
// can plug into an engine.OrderBook's trade callback. The book itself
// never logs — per its single-threaded, no-retry error policy — so
// any observability lives here, outside the hot path.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the package-level logger configured by Init. Zero
	// value until Init runs; a zero-value zerolog.Logger has no
	// writer and discards every event.
	Logger  zerolog.Logger
	logFile *os.File
)

// Init configures Logger from environment variables:
//
//	LOG_LEVEL  - zerolog level name, default "info"
//	LOG_FORMAT - "pretty" for a console writer, default JSON lines
//	LOG_FILE   - optional path; logs are duplicated there as well as
//	             stdout unless unset, "none", or "disabled"
func Init() {
	levelName := os.Getenv("LOG_LEVEL")
	if levelName == "" {
		levelName = "info"
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFilePath := os.Getenv("LOG_FILE")
	if logFilePath != "" && logFilePath != "none" && logFilePath != "disabled" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logFile = f
		}
	}

	var writers []io.Writer
	if os.Getenv("LOG_FORMAT") == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}
	if logFile != nil {
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
}

// Close flushes and releases the log file opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}
