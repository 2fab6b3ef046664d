package crew

import (
	"image/color"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"
)

func placed(name, job string, x, y float64, depts ...string) SensorStatus {
	s := sensor(name, job, depts...)
	s.Coordinates = &Coordinates{X: x, Y: y}
	return s
}

func TestMultiply(t *testing.T) {
	testutil.AssertEqual(t, "dimmed", ColorDimmed, color.RGBA{21, 84, 21, 255})
	testutil.AssertEqual(t, "identity", Multiply(ColorCyan, color.RGBA{255, 255, 255, 255}), ColorCyan)
}

func TestComputeBlips(t *testing.T) {
	a := placed("Ann", "Captain", 1, 2, "Command")
	b := placed("Bo", "Chief Medical Officer", 3, 4, "Command", "Medical")
	c := sensor("Cy", "Passenger")
	roster := BuildRoster([]SensorStatus{a, b, c})
	monitor := &Monitor{ID: uuid.New(), Coordinates: Coordinates{X: 9, Y: 9}}

	t.Run("no focus shows all at full color", func(t *testing.T) {
		set := ComputeBlips(BlipState{Roster: roster, MapVisible: true, Texture: "circle"}, nil)

		testutil.AssertEqual(t, "count", len(set), 2)
		for _, id := range []uuid.UUID{a.ID, b.ID} {
			testutil.AssertEqual(t, "color", set[id].Color, ColorLimeGreen)
			testutil.AssertEqual(t, "focused", set[id].Focused, false)
			testutil.AssertEqual(t, "selectable", set[id].Selectable, true)
		}
		testutil.AssertEqual(t, "label", set[b.ID].Label, "Bo, Chief Medical Officer")
		if _, ok := set[c.ID]; ok {
			t.Error("sensor without coordinates must not have a blip")
		}
	})

	t.Run("focus dims everything else", func(t *testing.T) {
		set := ComputeBlips(BlipState{Roster: roster, Focus: b.ID, MapVisible: true}, nil)

		testutil.AssertEqual(t, "focused color", set[b.ID].Color, ColorLimeGreen)
		testutil.AssertEqual(t, "focused flag", set[b.ID].Focused, true)
		testutil.AssertEqual(t, "other color", set[a.ID].Color, ColorDimmed)
		testutil.AssertEqual(t, "other flag", set[a.ID].Focused, false)
	})

	t.Run("filter drops hidden sensors", func(t *testing.T) {
		set := ComputeBlips(BlipState{Roster: roster, Filter: "capt", MapVisible: true}, nil)
		testutil.AssertEqual(t, "count", len(set), 1)
		if _, ok := set[a.ID]; !ok {
			t.Error("expected captain blip")
		}
	})

	t.Run("monitor is cyan and independent of focus", func(t *testing.T) {
		set := ComputeBlips(BlipState{Roster: roster, Focus: a.ID, MapVisible: true, Monitor: monitor}, nil)
		m := set[monitor.ID]
		testutil.AssertEqual(t, "color", m.Color, ColorCyan)
		testutil.AssertEqual(t, "focused", m.Focused, true)
		testutil.AssertEqual(t, "selectable", m.Selectable, false)
		testutil.AssertEqual(t, "position", m.Coordinates, monitor.Coordinates)
	})

	t.Run("hidden map has no blips", func(t *testing.T) {
		set := ComputeBlips(BlipState{Roster: roster, Monitor: monitor}, nil)
		testutil.AssertEqual(t, "count", len(set), 0)
	})

	t.Run("positions converted into grid frame", func(t *testing.T) {
		grid := uuid.New()
		frames := NewFrameTable()
		frames.Set(grid, Coordinates{X: 10, Y: 10})

		set := ComputeBlips(BlipState{Roster: roster, MapVisible: true, Grid: grid}, frames)
		testutil.AssertEqual(t, "local", set[a.ID].Coordinates, Coordinates{Parent: grid, X: -9, Y: -8})
	})
}

func TestDiffBlips_FocusMove(t *testing.T) {
	a := placed("Ann", "Captain", 1, 2)
	b := placed("Bo", "Doctor", 3, 4)
	c := placed("Cy", "Engineer", 5, 6)
	d := placed("Di", "Janitor", 7, 8)
	roster := BuildRoster([]SensorStatus{a, b, c, d})

	state := BlipState{Roster: roster, Focus: a.ID, MapVisible: true}
	before := ComputeBlips(state, nil)
	state.Focus = c.ID
	after := ComputeBlips(state, nil)

	diff := DiffBlips(before, after)

	testutil.AssertEqual(t, "added", len(diff.Added), 0)
	testutil.AssertEqual(t, "removed", len(diff.Removed), 0)
	testutil.AssertEqual(t, "updated", len(diff.Updated), 2)

	updated := map[uuid.UUID]bool{}
	for _, id := range diff.Updated {
		updated[id] = true
	}
	testutil.AssertEqual(t, "old focus updated", updated[a.ID], true)
	testutil.AssertEqual(t, "new focus updated", updated[c.ID], true)
	testutil.AssertEqual(t, "position kept", after[a.ID].Coordinates, before[a.ID].Coordinates)
}

func TestDiffBlips(t *testing.T) {
	x, y, z := uuid.New(), uuid.New(), uuid.New()
	blip := Blip{Color: ColorLimeGreen}
	moved := Blip{Color: ColorLimeGreen, Coordinates: Coordinates{X: 1}}

	tests := map[string]struct {
		prev, next BlipSet
		exp        Diff
	}{
		"identical": {
			prev: BlipSet{x: blip},
			next: BlipSet{x: blip},
		},
		"added and removed": {
			prev: BlipSet{x: blip},
			next: BlipSet{y: blip},
			exp:  Diff{Added: []uuid.UUID{y}, Removed: []uuid.UUID{x}},
		},
		"updated": {
			prev: BlipSet{x: blip, z: blip},
			next: BlipSet{x: blip, z: moved},
			exp:  Diff{Updated: []uuid.UUID{z}},
		},
		"from empty": {
			prev: BlipSet{},
			next: BlipSet{x: blip},
			exp:  Diff{Added: []uuid.UUID{x}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := DiffBlips(tt.prev, tt.next)
			testutil.AssertEqual(t, "empty", d.Empty(), tt.exp.Empty())
			testutil.AssertEqual(t, "added", len(d.Added), len(tt.exp.Added))
			testutil.AssertEqual(t, "updated", len(d.Updated), len(tt.exp.Updated))
			testutil.AssertEqual(t, "removed", len(d.Removed), len(tt.exp.Removed))
			for i := range d.Added {
				testutil.AssertEqual(t, "added id", d.Added[i], tt.exp.Added[i])
			}
			for i := range d.Updated {
				testutil.AssertEqual(t, "updated id", d.Updated[i], tt.exp.Updated[i])
			}
			for i := range d.Removed {
				testutil.AssertEqual(t, "removed id", d.Removed[i], tt.exp.Removed[i])
			}
		})
	}
}

func TestFrameTable_ToFrame(t *testing.T) {
	station := uuid.New()
	shuttle := uuid.New()
	frames := NewFrameTable()
	frames.Set(station, Coordinates{X: 100, Y: 50})
	frames.Set(shuttle, Coordinates{Parent: station, X: 5, Y: -5})

	tests := map[string]struct {
		in     Coordinates
		target uuid.UUID
		exp    Coordinates
	}{
		"same frame is unchanged": {
			in:     Coordinates{Parent: station, X: 1, Y: 1},
			target: station,
			exp:    Coordinates{Parent: station, X: 1, Y: 1},
		},
		"child into parent": {
			in:     Coordinates{Parent: shuttle, X: 1, Y: 1},
			target: station,
			exp:    Coordinates{Parent: station, X: 6, Y: -4},
		},
		"world into station": {
			in:     Coordinates{X: 101, Y: 51},
			target: station,
			exp:    Coordinates{Parent: station, X: 1, Y: 1},
		},
		"unknown target is world origin": {
			in:     Coordinates{Parent: station, X: 0, Y: 0},
			target: uuid.New(),
			exp:    Coordinates{X: 100, Y: 50},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := frames.ToFrame(tt.in, tt.target)
			testutil.AssertEqual(t, "x", got.X, tt.exp.X)
			testutil.AssertEqual(t, "y", got.Y, tt.exp.Y)
			if tt.exp.Parent != uuid.Nil {
				testutil.AssertEqual(t, "parent", got.Parent, tt.exp.Parent)
			}
		})
	}
}

func TestFrameTable_CycleTerminates(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	frames := NewFrameTable()
	frames.Set(a, Coordinates{Parent: b, X: 1})
	frames.Set(b, Coordinates{Parent: a, X: 1})

	got := frames.ToFrame(Coordinates{Parent: a}, uuid.Nil)
	testutil.AssertEqual(t, "bounded walk", got.X, float64(maxFrameDepth))
}
