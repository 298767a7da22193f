package main

import (
	"flag"
	"image"
	"os"

	"github.com/sirupsen/logrus"

	"cardfx/internal/avatar"
	"cardfx/internal/config"
	"cardfx/internal/imageio"
	"cardfx/internal/logging"
	"cardfx/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	avatarPath := flag.String("avatar", "", "Avatar image shown on the card (background removed)")
	width := flag.Int("w", 320, "Card width")
	height := flag.Int("h", 440, "Card height")
	overlay := flag.Bool("overlay", false, "Show live tilt parameters")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logging.New(*debug)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.WithError(err).Fatal("Error loading config")
		}
	}
	cfg.Resolve(config.Flags{})
	if !*debug {
		logging.SetLevel(log, cfg.LogLevel)
	}

	opts := viewer.Options{
		CardWidth:  *width,
		CardHeight: *height,
		Timing:     cfg.Tilt.Timing(),
		Debug:      *overlay,
		Log:        log,
	}

	var img image.Image
	if *avatarPath != "" {
		data, err := os.ReadFile(*avatarPath)
		if err != nil {
			log.WithError(err).Fatal("Error reading avatar")
		}
		// Preview hands back the upload untouched when processing fails.
		decoded, _, err := imageio.DecodeLimit(avatar.New(
			avatar.WithMaxDimension(cfg.MaxDimension),
			avatar.WithMaxPixels(cfg.MaxPixels),
			avatar.WithLogger(log),
		).Preview(data), cfg.MaxPixels)
		if err != nil {
			log.WithError(err).Fatal("Error decoding avatar")
		}
		log.WithFields(logrus.Fields{
			"file": *avatarPath,
			"size": decoded.Bounds().Size().String(),
		}).Info("Avatar loaded")
		img = decoded
	}

	g := viewer.New(img, opts)
	if err := g.Run("cardfx"); err != nil {
		log.WithError(err).Fatal("Viewer exited")
	}
}
