package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/shiftsync/shiftsync/internal/simulation"
)

// Default configuration constants.
const (
	defaultNumTalent     = 500
	defaultNumShifts     = 50
	defaultFillCount     = 3
	defaultWorkersPerCPU = 2
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numTalent  = flag.Int("talent", defaultNumTalent, "Number of talent profiles to seed")
		numShifts  = flag.Int("shifts", defaultNumShifts, "Number of shifts to seed")
		fillCount  = flag.Int("count", defaultFillCount, "Headcount requested per auto-fill call")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkersPerCPU, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for the seeded dataset (optional)")
		logFile    = flag.String("log", "", "Log file for simulation output (default: simulation_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulation.ShowHelp()
		return
	}

	if err := simulation.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulation.Config{
		BaseURL:    *baseURL,
		NumTalent:  *numTalent,
		NumShifts:  *numShifts,
		FillCount:  *fillCount,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := simulation.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
