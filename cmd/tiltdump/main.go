package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"cardfx/internal/anim"
	"cardfx/internal/config"
	"cardfx/internal/logging"
	"cardfx/internal/tilt"
)

// frame is one JSON line of output.
type frame struct {
	Phase string     `json:"phase"`
	T     float64    `json:"t_ms"`
	State tilt.State `json:"state"`
}

// recorder is a headless surface that writes every applied state.
type recorder struct {
	bounds tilt.Bounds
	enc    *json.Encoder
	phase  string
	start  time.Time
	now    func() time.Time
	err    error
}

func (r *recorder) Bounds() (tilt.Bounds, bool) { return r.bounds, true }

func (r *recorder) Apply(st tilt.State) {
	if r.err != nil {
		return
	}
	ms := float64(r.now().Sub(r.start)) / float64(time.Millisecond)
	r.err = r.enc.Encode(frame{Phase: r.phase, T: ms, State: st})
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file (tilt section)")
	width := flag.Float64("w", 320, "Surface width")
	height := flag.Float64("h", 440, "Surface height")
	fps := flag.Int("fps", 60, "Simulated display refresh rate")
	leaveX := flag.Float64("x", -1, "Pointer-leave X (negative: skip the leave animation)")
	leaveY := flag.Float64("y", -1, "Pointer-leave Y")
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

	if *fps <= 0 {
		log.WithField("fps", *fps).Fatal("fps must be positive")
	}
	interval := time.Second / time.Duration(*fps)

	// Simulated clock advanced one refresh per tick.
	clock := time.Unix(0, 0)
	now := func() time.Time { return clock }

	bounds := tilt.Bounds{Width: *width, Height: *height}
	rec := &recorder{
		bounds: bounds,
		enc:    json.NewEncoder(os.Stdout),
		start:  clock,
		now:    now,
	}
	loop := anim.NewLoop(now)
	card := anim.NewCard(rec, loop, anim.WithTiming(cfg.Tilt.Timing()), anim.WithLogger(log))
	defer card.Unmount()

	settle := func(phase string, s *anim.Session) {
		ticks := 0
		for loop.Pending() > 0 {
			clock = clock.Add(interval)
			loop.Tick(clock)
			ticks++
		}
		log.WithFields(logrus.Fields{
			"phase":    phase,
			"ticks":    ticks,
			"frames":   s.Frames(),
			"status":   s.Status(),
			"duration": s.Duration(),
			"elapsed":  clock.Sub(s.StartedAt()),
		}).Debug("Animation settled")
	}

	rec.phase = "mount"
	mount, err := card.Mount(bounds)
	if err != nil {
		log.WithError(err).Fatal("Mount failed")
	}
	settle("mount", mount)

	if *leaveX >= 0 && *leaveY >= 0 {
		rec.phase = "leave"
		rec.start = clock
		last := tilt.Offset{X: *leaveX, Y: *leaveY}
		if _, err := card.PointerMove(last, bounds); err != nil {
			log.WithError(err).Fatal("Pointer move failed")
		}
		leave, err := card.PointerLeave(last, bounds)
		if err != nil {
			log.WithError(err).Fatal("Pointer leave failed")
		}
		settle("leave", leave)
	}

	if rec.err != nil {
		log.WithError(rec.err).Fatal("Write failed")
	}
}
