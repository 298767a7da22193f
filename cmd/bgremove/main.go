package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"cardfx/internal/avatar"
	"cardfx/internal/batch"
	"cardfx/internal/config"
	"cardfx/internal/imageio"
	"cardfx/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("in", "", "Upload file or directory of uploads")
	output := flag.String("out", "", "Output directory (default: <input>/nobg)")
	format := flag.String("format", "", "Output format: png or webp (default: png)")
	maxDim := flag.Int("max", 0, "Downscale uploads larger than this many pixels (default: off)")
	maxPixels := flag.Int("max-pixels", 0, "Reject uploads declaring more pixels than this (default: 40000000)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()
	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}

	log := logging.New(*debug)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.WithError(err).Fatal("Error loading config")
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Input:        *input,
		Output:       *output,
		Format:       *format,
		MaxDimension: *maxDim,
		MaxPixels:    *maxPixels,
		Workers:      *workers,
	})
	if !*debug {
		logging.SetLevel(log, cfg.LogLevel)
	}

	if cfg.InputDir == "" {
		log.Fatal("No input. Use -in flag or input_dir in config.json.")
	}

	outFormat, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		log.WithError(err).Fatal("Invalid output format")
	}

	jobs, err := batch.Discover(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		log.WithError(err).Fatal("Error reading input")
	}
	if len(jobs) == 0 {
		log.WithField("input", cfg.InputDir).Info("No uploads to process.")
		return
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.WithError(err).Fatal("Error creating output directory")
	}

	log.WithFields(logrus.Fields{
		"uploads": len(jobs),
		"workers": cfg.Workers,
		"format":  outFormat,
		"max_dim": cfg.MaxDimension,
		"output":  cfg.OutputDir,
	}).Info("Background removal starting")

	start := time.Now()

	// Run batch
	processor := avatar.New(
		avatar.WithFormat(outFormat),
		avatar.WithMaxDimension(cfg.MaxDimension),
		avatar.WithMaxPixels(cfg.MaxPixels),
		avatar.WithLogger(log),
	)
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Processor: processor,
		Workers:   cfg.Workers,
		Fallback:  *cfg.Fallback,
		Log:       log,
	}, jobs)

	manifest := batch.NewManifest(outFormat, results)

	log.WithFields(logrus.Fields{
		"elapsed":   fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		"succeeded": manifest.Succeeded,
		"fallbacks": manifest.Fallbacks,
		"failed":    manifest.Failed,
		"total":     manifest.Total,
	}).Info("Done")

	// Report the first failures
	shown := 0
	for _, r := range results {
		if r.Success || shown == 20 {
			continue
		}
		log.WithField("file", r.Name).Warn(r.Error)
		shown++
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		log.WithError(err).Warn("Manifest write failed")
	} else {
		log.WithField("path", manifestPath).Info("Manifest written")
	}

	if manifest.Failed > 0 {
		os.Exit(1)
	}
}
