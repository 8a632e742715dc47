package viewer

import "github.com/cwbudde/algo-ppg/dsp/core"

// Cursor is the start index of the displayed window. Moves return a new
// Cursor; the receiver is never changed.
type Cursor struct {
	Lower int // first sample of the window
	Hop   int // samples per step
	Max   int // last valid Lower
}

// NewCursor returns a cursor at 0. max is the last valid window start.
func NewCursor(max, hop int) Cursor {
	if max < 0 {
		max = 0
	}
	if hop < 1 {
		hop = 1
	}
	return Cursor{Hop: hop, Max: max}
}

// Seek moves to lower, clamped to [0, Max]. clamped reports whether the
// target had to be pinned.
func (c Cursor) Seek(lower int) (next Cursor, clamped bool) {
	next = c
	next.Lower = core.ClampIndex(lower, 0, c.Max)
	return next, next.Lower != lower
}

// Move shifts the cursor by steps hops.
func (c Cursor) Move(steps int) (Cursor, bool) {
	return c.Seek(c.Lower + steps*c.Hop)
}

func (c Cursor) Advance() (Cursor, bool) { return c.Move(1) }

func (c Cursor) Retreat() (Cursor, bool) { return c.Move(-1) }
