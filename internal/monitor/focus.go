package monitor

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
)

const scrollTolerance = 1e-5

// Select handles a click on the row at index. Clicking the tracked sensor
// clears the focus; clicking any other sensor tracks it and centers the
// map on it. Headers, separators and disabled rows ignore clicks.
func (v *View) Select(index int) {
	if index < 0 || index >= len(v.rendered) {
		return
	}
	row := v.rendered[index]
	if row.Kind != RowSensor || row.Disabled {
		return
	}

	prev := v.focus
	id := row.ID()
	if v.focus == id {
		v.focus = uuid.Nil
	} else {
		v.focus = id
		if b, ok := v.blips[id]; ok {
			v.nav.CenterOn(b.Coordinates)
		}
	}

	v.refocus(prev)
}

// TrackFromMap handles a selection made on the map itself. The table
// follows by scrolling the focused row into view over the next frames.
func (v *View) TrackFromMap(id uuid.UUID) {
	prev := v.focus
	v.focus = id

	v.scrollPending = id != uuid.Nil
	v.scrollTicks = 0

	v.refocus(prev)
}

// refocus updates highlight on rows and blip colors after the focus moved
// away from prev.
func (v *View) refocus(prev uuid.UUID) {
	if v.focus == uuid.Nil {
		v.scrollPending = false
	}
	if prev == v.focus {
		v.nav.SetFocus(v.focus)
		return
	}

	for i := range v.rendered {
		row := &v.rendered[i]
		if row.Kind != RowSensor {
			continue
		}
		id := row.ID()
		if id != prev && id != v.focus {
			continue
		}
		focused := id == v.focus
		if row.Focused != focused {
			row.Focused = focused
			v.rows.UpdateRow(i, *row)
		}
	}

	v.applyBlips(v.computeBlips())
}

// ScrollPending reports whether a scroll-to-focus is still in progress.
func (v *View) ScrollPending() bool {
	return v.scrollPending
}

// FrameUpdate runs once per display frame and advances a pending
// scroll-to-focus.
func (v *View) FrameUpdate() {
	if !v.scrollPending {
		return
	}

	v.scrollTicks++
	if v.scrollLimit > 0 && v.scrollTicks > v.scrollLimit {
		slog.Debug("abandoning scroll to focused sensor", "sensor", v.focus, "frames", v.scrollLimit)
		v.scrollPending = false
		return
	}

	target, ok := v.scrollTarget()
	if !ok {
		return
	}

	v.rows.SetScrollTarget(target)
	if closeTo(v.rows.ScrollOffset(), target) {
		v.scrollPending = false
	}
}

// scrollTarget is the total height of every row above the first row of the
// focused sensor.
func (v *View) scrollTarget() (float64, bool) {
	var offset float64
	for i := range v.rendered {
		row := &v.rendered[i]
		if row.Kind == RowSensor && row.ID() == v.focus {
			return offset, true
		}
		offset += v.rows.RowHeight(i)
	}
	return 0, false
}

func closeTo(a, b float64) bool {
	epsilon := math.Max(math.Max(math.Abs(a), math.Abs(b))*scrollTolerance, scrollTolerance)
	return math.Abs(a-b) <= epsilon
}
