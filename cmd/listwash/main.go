package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"listwash/internal/config"
	"listwash/internal/metrics"
	"listwash/internal/metrics/prompush"

	// register all backends with the sink factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "listwash/internal/sink/all"
)

// main is the entry point for the listwash binary. It resolves the pipeline
// config, optionally initializes a metrics backend, and executes the run.
func main() {
	var (
		cfgPath           string
		inputPath         string
		outputPath        string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "pipeline config JSON path (empty: built-in contact-list chain over -input)")
	flag.StringVar(&inputPath, "input", "", "input file; overrides source.path from the config")
	flag.StringVar(&outputPath, "output", "", "output CSV file; adds or retargets a csv sink")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none; env LISTWASH_METRICS_BACKEND)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env LISTWASH_PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	p, err := loadPipeline(cfgPath, inputPath, outputPath)
	if err != nil {
		fatalf("%v", err)
	}

	// Validate pipeline config.
	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	runID := uuid.NewString()
	log.Printf("run=%s job=%s", runID, p.Job)

	// Decide metrics backend: flag → env → default (disabled).
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("LISTWASH_METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		// Decide Pushgateway URL: flag → env → default.
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("LISTWASH_PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		b, err := prompush.NewBackend(p.Job, gwURL, runID)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job=%v", gwURL, backendName, p.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if err := runPipeline(ctx, p, *verbose); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// loadPipeline resolves the run's pipeline. With -config the file is decoded
// and -input/-output act as overrides; without it, -input is required and the
// built-in contact-list chain runs over it, writing to -output (default:
// "<input stem>_clean.csv" next to the input).
func loadPipeline(cfgPath, input, output string) (config.Pipeline, error) {
	if cfgPath == "" {
		if input == "" {
			return config.Pipeline{}, fmt.Errorf("either -config or -input is required")
		}
		if output == "" {
			output = defaultOutput(input)
		}
		return config.DefaultPipeline(input, output), nil
	}

	f, err := os.Open(cfgPath)
	if err != nil {
		return config.Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var p config.Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return config.Pipeline{}, fmt.Errorf("decode config %s: %w", cfgPath, err)
	}
	if input != "" {
		p.Source.Path = input
	}
	if output != "" {
		retargetCSVSink(&p, output)
	}
	return p, nil
}

// retargetCSVSink points the pipeline's first csv sink at path, appending one
// when the pipeline has none.
func retargetCSVSink(p *config.Pipeline, path string) {
	for i := range p.Sinks {
		if p.Sinks[i].Kind == "csv" {
			if p.Sinks[i].Options == nil {
				p.Sinks[i].Options = config.Options{}
			}
			p.Sinks[i].Options["path"] = path
			return
		}
	}
	p.Sinks = append(p.Sinks, config.Sink{
		Kind:    "csv",
		Options: config.Options{"path": path, "include_index": true},
	})
}

// defaultOutput derives the output path from the input: "contacts.xlsx"
// becomes "contacts_clean.csv".
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_clean.csv"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
