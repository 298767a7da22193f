package anim

import (
	"time"

	"cardfx/internal/mathutil"
	"cardfx/internal/tilt"
)

// Target is the presentation surface a card animates.
type Target interface {
	// Bounds returns the current surface size, or false once the surface
	// has been removed from the presentation tree.
	Bounds() (tilt.Bounds, bool)
	Apply(tilt.State)
}

// Status is the lifecycle state of a Session.
type Status int

const (
	Running Status = iota
	Finished
	Canceled
	Detached // surface went away mid-animation
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Canceled:
		return "canceled"
	case Detached:
		return "detached"
	}
	return "unknown"
}

// Session is one eased return animation. It owns exactly one pending frame
// callback while running.
type Session struct {
	sched    Scheduler
	target   Target
	start    time.Time
	from     tilt.Offset
	to       tilt.Offset
	duration time.Duration

	frame    FrameID
	status   Status
	progress float64
	frames   int
}

func startSession(sched Scheduler, target Target, duration time.Duration, from, to tilt.Offset) *Session {
	s := &Session{
		sched:    sched,
		target:   target,
		start:    sched.Now(),
		from:     from,
		to:       to,
		duration: duration,
	}
	s.frame = sched.RequestFrame(s.step)
	return s
}

func (s *Session) step(now time.Time) {
	if s.status != Running {
		return
	}

	b, ok := s.target.Bounds()
	if !ok || !b.Valid() {
		s.status = Detached
		return
	}

	progress := 1.0
	if s.duration > 0 {
		progress = mathutil.Clamp(float64(now.Sub(s.start))/float64(s.duration), 0, 1)
	}
	eased := mathutil.EaseInOutCubic(progress)

	cur := tilt.Offset{
		X: mathutil.Adjust(eased, 0, 1, s.from.X, s.to.X),
		Y: mathutil.Adjust(eased, 0, 1, s.from.Y, s.to.Y),
	}
	state, err := tilt.Compute(cur, b)
	if err != nil {
		s.status = Detached
		return
	}
	s.target.Apply(state)
	s.progress = progress
	s.frames++

	if progress < 1 {
		s.frame = s.sched.RequestFrame(s.step)
		return
	}
	s.status = Finished
}

// Cancel stops the session and drops its pending frame. Canceling a finished
// or already-canceled session does nothing.
func (s *Session) Cancel() {
	if s == nil || s.status != Running {
		return
	}
	s.sched.CancelFrame(s.frame)
	s.status = Canceled
}

// Active reports whether the session still has a frame scheduled.
func (s *Session) Active() bool {
	return s != nil && s.status == Running
}

func (s *Session) Status() Status { return s.status }

// Progress is the linear progress in [0,1] as of the last applied frame.
func (s *Session) Progress() float64 { return s.progress }

// Frames is the number of frames applied so far.
func (s *Session) Frames() int { return s.frames }

func (s *Session) From() tilt.Offset       { return s.from }
func (s *Session) To() tilt.Offset         { return s.to }
func (s *Session) Duration() time.Duration { return s.duration }
func (s *Session) StartedAt() time.Time    { return s.start }
