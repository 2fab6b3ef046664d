package crew

import (
	"image/color"
	"slices"

	"github.com/google/uuid"
)

var (
	ColorLimeGreen = color.RGBA{50, 205, 50, 255}
	ColorDimGray   = color.RGBA{105, 105, 105, 255}
	ColorDarkRed   = color.RGBA{139, 0, 0, 255}
	ColorCyan      = color.RGBA{0, 255, 255, 255}

	// ColorDimmed marks blips that are not the current focus.
	ColorDimmed = Multiply(ColorLimeGreen, ColorDimGray)
)

// Multiply modulates a by b channel-wise.
func Multiply(a, b color.RGBA) color.RGBA {
	mul := func(x, y uint8) uint8 {
		return uint8((uint16(x)*uint16(y) + 127) / 255)
	}
	return color.RGBA{mul(a.R, b.R), mul(a.G, b.G), mul(a.B, b.B), mul(a.A, b.A)}
}

// Blip is a marker on the navigation map.
type Blip struct {
	Coordinates Coordinates
	Texture     string
	Color       color.RGBA
	Focused     bool
	Selectable  bool
	Label       string
}

// BlipSet is the full marker table keyed by entity.
type BlipSet map[uuid.UUID]Blip

// Monitor is the console's own position marker.
type Monitor struct {
	ID          uuid.UUID
	Coordinates Coordinates
}

// BlipState is everything the marker table depends on.
type BlipState struct {
	Roster *Roster
	// Focus is the tracked sensor; uuid.Nil when nothing is tracked.
	Focus  uuid.UUID
	Filter string

	// MapVisible is false when no map is bound; no markers are produced.
	MapVisible bool
	// Grid is the frame sensor positions are converted into.
	Grid    uuid.UUID
	Texture string
	Monitor *Monitor
}

// SensorColor is the blip color of a sensor under the given focus.
func SensorColor(id, focus uuid.UUID) color.RGBA {
	if focus == uuid.Nil || id == focus {
		return ColorLimeGreen
	}
	return ColorDimmed
}

// ComputeBlips derives the marker table from state. Sensors hidden by the
// filter or lacking coordinates get no marker.
func ComputeBlips(state BlipState, tf Transformer) BlipSet {
	set := BlipSet{}
	if !state.MapVisible {
		return set
	}

	if !state.Roster.Empty() {
		for i := range state.Roster.Sensors {
			s := &state.Roster.Sensors[i]
			if s.Coordinates == nil || !s.Matches(state.Filter) {
				continue
			}
			if _, ok := set[s.ID]; ok {
				continue
			}

			coords := *s.Coordinates
			if tf != nil && state.Grid != uuid.Nil {
				coords = tf.ToFrame(coords, state.Grid)
			}

			set[s.ID] = Blip{
				Coordinates: coords,
				Texture:     state.Texture,
				Color:       SensorColor(s.ID, state.Focus),
				Focused:     s.ID == state.Focus,
				Selectable:  true,
				Label:       s.Label(),
			}
		}
	}

	if state.Monitor != nil {
		set[state.Monitor.ID] = Blip{
			Coordinates: state.Monitor.Coordinates,
			Texture:     state.Texture,
			Color:       ColorCyan,
			Focused:     true,
			Selectable:  false,
		}
	}

	return set
}

// Diff lists the marker changes between two tables.
type Diff struct {
	Added   []uuid.UUID
	Updated []uuid.UUID
	Removed []uuid.UUID
}

func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// DiffBlips compares prev and next. Identities in each list are sorted so
// that applying a diff is deterministic.
func DiffBlips(prev, next BlipSet) Diff {
	var d Diff
	for id, nb := range next {
		pb, ok := prev[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case pb != nb:
			d.Updated = append(d.Updated, id)
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}

	byID := func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) }
	slices.SortFunc(d.Added, byID)
	slices.SortFunc(d.Updated, byID)
	slices.SortFunc(d.Removed, byID)
	return d
}
