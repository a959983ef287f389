package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/tribe-app/matchd/internal/smoke"
)

// Default configuration constants.
const (
	defaultRequests     = 100
	defaultCandidates   = 50
	defaultTopN         = 10
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultSmokeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests   = flag.Int("requests", defaultRequests, "Number of request rounds per mode")
		candidates = flag.Int("candidates", defaultCandidates, "Number of synthetic entities for duplicate checks")
		topN       = flag.Int("top", defaultTopN, "Result limit requested per call")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile    = flag.String("log", "", "Log file for smoke output (default: smoke_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	// Setup logging
	if err := smoke.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSmokeTimeout)
	defer cancel()

	// Create smoke configuration
	config := &smoke.Config{
		BaseURL:    *baseURL,
		Requests:   *requests,
		Candidates: *candidates,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the smoke check
	if err := smoke.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
