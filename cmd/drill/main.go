package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/swish/internal/drill"
	"github.com/okian/swish/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumSeries    = 20
	defaultInterval     = 250 * time.Millisecond
	defaultTimeout      = 30 * time.Second
	defaultDrillTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numSeries = flag.Int("series", defaultNumSeries, "Number of series to submit")
		interval  = flag.Duration("interval", defaultInterval, "Pause between submissions")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDrillTimeout)
	defer cancel()

	config := &drill.Config{
		BaseURL:   *baseURL,
		NumSeries: *numSeries,
		Interval:  *interval,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := drill.Run(ctx, config); err != nil {
		os.Stderr.WriteString("drill failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
