package anim

import (
	"time"

	"github.com/sirupsen/logrus"

	"cardfx/internal/logging"
	"cardfx/internal/tilt"
)

// Timing holds the fixed parameters of the two eased animations.
type Timing struct {
	Smooth         time.Duration // pointer-leave return to center
	Initial        time.Duration // entrance sweep on mount
	InitialXOffset float64       // entrance starts at (width - InitialXOffset, InitialYOffset)
	InitialYOffset float64
}

// DefaultTiming returns the stock card timing.
func DefaultTiming() Timing {
	return Timing{
		Smooth:         600 * time.Millisecond,
		Initial:        1500 * time.Millisecond,
		InitialXOffset: 70,
		InitialYOffset: 60,
	}
}

// EntranceStart is the off-center point the mount animation starts from.
func (t Timing) EntranceStart(b tilt.Bounds) tilt.Offset {
	return tilt.Offset{X: b.Width - t.InitialXOffset, Y: t.InitialYOffset}
}

// Card drives the tilt of one surface. It owns at most one Session at a time;
// every entry point cancels the previous session before doing anything else.
type Card struct {
	target  Target
	sched   Scheduler
	timing  Timing
	log     logrus.FieldLogger
	session *Session
}

// Option configures a Card.
type Option func(*Card)

func WithTiming(t Timing) Option {
	return func(c *Card) { c.timing = t }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Card) { c.log = l }
}

// NewCard binds a card to its presentation target and frame scheduler.
func NewCard(target Target, sched Scheduler, opts ...Option) *Card {
	c := &Card{
		target: target,
		sched:  sched,
		timing: DefaultTiming(),
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PointerMove maps the pointer straight onto the surface (direct tracking).
func (c *Card) PointerMove(off tilt.Offset, b tilt.Bounds) (tilt.State, error) {
	c.cancel()

	state, err := tilt.Compute(off, b)
	if err != nil {
		return tilt.State{}, err
	}
	c.target.Apply(state)
	return state, nil
}

// PointerEnter cancels any in-flight animation so tracking can take over.
func (c *Card) PointerEnter() {
	c.cancel()
}

// PointerLeave eases the tilt from the last pointer position back to center.
func (c *Card) PointerLeave(last tilt.Offset, b tilt.Bounds) (*Session, error) {
	return c.Animate(c.timing.Smooth, last, b.Center(), b)
}

// Mount applies the entrance pose immediately and sweeps it to center.
func (c *Card) Mount(b tilt.Bounds) (*Session, error) {
	c.cancel()

	start := c.timing.EntranceStart(b)
	state, err := tilt.Compute(start, b)
	if err != nil {
		return nil, err
	}
	c.target.Apply(state)

	return c.Animate(c.timing.Initial, start, b.Center(), b)
}

// Animate starts an eased animation from one offset to another, replacing any
// running session.
func (c *Card) Animate(d time.Duration, from, to tilt.Offset, b tilt.Bounds) (*Session, error) {
	c.cancel()

	if !b.Valid() {
		return nil, &tilt.InvalidSurfaceError{Bounds: b}
	}

	c.session = startSession(c.sched, c.target, d, from, to)
	c.log.WithFields(logrus.Fields{
		"duration": d,
		"from":     from,
		"to":       to,
	}).Debug("Animation started")

	return c.session, nil
}

// Unmount tears the card down. Safe to call more than once.
func (c *Card) Unmount() {
	c.cancel()
	c.session = nil
}

// Session returns the running session, or nil.
func (c *Card) Session() *Session {
	if c.session.Active() {
		return c.session
	}
	return nil
}

func (c *Card) cancel() {
	if c.session.Active() {
		c.session.Cancel()
		c.log.WithField("progress", c.session.Progress()).Debug("Animation canceled")
	}
}
