package simulation

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/shiftsync/shiftsync/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulation_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`ShiftSync Marketplace Simulator
===============================

Seeds a talent pool and a batch of shifts against a running service, runs
the auto-fill routine on every shift twice, and verifies the matching
invariants hold.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -talent int
        Number of talent profiles to seed (default 500)
  -shifts int
        Number of shifts to seed (default 50)
  -count int
        Headcount requested per auto-fill call (default 3)
  -workers int
        Number of concurrent seeding workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for the seeded dataset (optional)
  -log string
        Log file for simulation output (default: simulation_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # Heavy pool against a local service
  go run cmd/simulate/main.go -talent 5000 -shifts 200 -count 5

  # Save the seeded dataset for replay
  go run cmd/simulate/main.go -output dataset.json
`)
}
