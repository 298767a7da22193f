package anim

import "cardfx/internal/tilt"

// Hover turns per-frame cursor samples into the card's pointer enter, move
// and leave calls, for hosts that only expose a polled cursor position.
type Hover struct {
	card   *Card
	inside bool
	last   tilt.Offset
}

func NewHover(card *Card) *Hover {
	return &Hover{card: card}
}

// Sample feeds one cursor position relative to the surface's top-left corner.
// Leaving starts the eased return from the last position seen inside.
func (h *Hover) Sample(off tilt.Offset, b tilt.Bounds) error {
	in := off.X >= 0 && off.Y >= 0 && off.X < b.Width && off.Y < b.Height

	var err error
	switch {
	case in && !h.inside:
		h.card.PointerEnter()
		_, err = h.card.PointerMove(off, b)
	case in && off != h.last:
		_, err = h.card.PointerMove(off, b)
	case !in && h.inside:
		_, err = h.card.PointerLeave(h.last, b)
	}

	h.inside = in
	if in {
		h.last = off
	}
	return err
}

// Inside reports whether the last sample was over the surface.
func (h *Hover) Inside() bool { return h.inside }
