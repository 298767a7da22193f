package anim

import (
	"testing"
	"time"
)

func TestLoopRunsPendingOnTick(t *testing.T) {
	l := NewLoop(nil)
	var calls []int
	l.RequestFrame(func(time.Time) { calls = append(calls, 1) })
	l.RequestFrame(func(time.Time) { calls = append(calls, 2) })

	if got := l.Pending(); got != 2 {
		t.Fatalf("expected 2 pending, got %d", got)
	}
	if ran := l.Tick(time.Now()); ran != 2 {
		t.Fatalf("expected 2 callbacks, got %d", ran)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("unexpected call order %v", calls)
	}
	if got := l.Pending(); got != 0 {
		t.Fatalf("expected empty queue, got %d", got)
	}
}

func TestLoopDefersFramesRequestedDuringTick(t *testing.T) {
	l := NewLoop(nil)
	count := 0
	var again FrameFunc
	again = func(time.Time) {
		count++
		l.RequestFrame(again)
	}
	l.RequestFrame(again)

	for i := 1; i <= 3; i++ {
		if ran := l.Tick(time.Now()); ran != 1 {
			t.Fatalf("tick %d: expected 1 callback, got %d", i, ran)
		}
		if count != i {
			t.Fatalf("tick %d: expected count %d, got %d", i, i, count)
		}
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop(nil)
	ran := false
	id := l.RequestFrame(func(time.Time) { ran = true })
	l.CancelFrame(id)
	l.CancelFrame(id)
	l.CancelFrame(FrameID(9999))

	if n := l.Tick(time.Now()); n != 0 || ran {
		t.Fatalf("expected canceled callback not to run, ran=%v n=%d", ran, n)
	}
}

func TestLoopCancelDuringTick(t *testing.T) {
	l := NewLoop(nil)
	secondRan := false
	var second FrameID
	l.RequestFrame(func(time.Time) { l.CancelFrame(second) })
	second = l.RequestFrame(func(time.Time) { secondRan = true })

	if n := l.Tick(time.Now()); n != 1 {
		t.Fatalf("expected 1 callback, got %d", n)
	}
	if secondRan {
		t.Fatal("expected callback canceled mid-tick not to run")
	}
}

func TestLoopPassesTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoop(func() time.Time { return base })
	if !l.Now().Equal(base) {
		t.Fatalf("expected clock time %v, got %v", base, l.Now())
	}

	var seen time.Time
	l.RequestFrame(func(now time.Time) { seen = now })
	at := base.Add(16 * time.Millisecond)
	l.Tick(at)
	if !seen.Equal(at) {
		t.Fatalf("expected %v, got %v", at, seen)
	}
}
