package anim

import "time"

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameFunc runs on a display refresh with the refresh timestamp.
type FrameFunc func(now time.Time)

// Scheduler is a "run on the next refresh, cancelable" primitive.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type frame struct {
	id FrameID
	fn FrameFunc
}

// Loop is a cooperative frame queue driven by explicit Tick calls, one per refresh.
// It is not safe for concurrent use; all calls must come from the refresh goroutine.
type Loop struct {
	clock  func() time.Time
	nextID FrameID
	queue  []frame
}

// NewLoop returns a Loop reading timestamps from clock (time.Now when nil).
func NewLoop(clock func() time.Time) *Loop {
	if clock == nil {
		clock = time.Now
	}
	return &Loop{clock: clock}
}

func (l *Loop) Now() time.Time {
	return l.clock()
}

// RequestFrame queues fn for the next Tick.
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.nextID++
	l.queue = append(l.queue, frame{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame drops a pending callback. Unknown or already-run ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	for i, f := range l.queue {
		if f.id == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
}

// Tick runs every callback that was pending when the tick started and returns
// how many ran. Callbacks requested during the tick wait for the next one, and
// callbacks canceled during the tick do not run.
func (l *Loop) Tick(now time.Time) int {
	limit := l.nextID
	ran := 0
	for len(l.queue) > 0 && l.queue[0].id <= limit {
		f := l.queue[0]
		l.queue = l.queue[1:]
		f.fn(now)
		ran++
	}
	return ran
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	return len(l.queue)
}
