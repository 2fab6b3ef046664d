package monitor

import (
	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/locale"
)

const (
	MsgNoDepartment = "crew-monitoring-user-interface-no-department"
	MsgNoServer     = "crew-monitoring-user-interface-no-server"

	DefaultBlipTexture      = "beveled_circle"
	DefaultScrollRetryLimit = 300
)

// View is the crew monitoring window. It must be driven from a single
// goroutine: the UI loop that owns rows and nav.
type View struct {
	rows     RowList
	nav      NavMap
	messages locale.Formatter
	icons    JobIcons
	frames   crew.Transformer

	texture     string
	scrollLimit int

	station    string
	grid       uuid.UUID
	mapVisible bool

	roster   *crew.Roster
	monitor  *crew.Monitor
	rendered []Row
	blips    crew.BlipSet

	focus  uuid.UUID
	filter string

	scrollPending bool
	scrollTicks   int
}

type ViewOpt func(*View)

func WithJobIcons(icons JobIcons) ViewOpt {
	return func(v *View) {
		v.icons = icons
	}
}

// WithTransformer sets how sensor positions are converted into the
// bound grid's frame.
func WithTransformer(tf crew.Transformer) ViewOpt {
	return func(v *View) {
		v.frames = tf
	}
}

func WithBlipTexture(texture string) ViewOpt {
	return func(v *View) {
		v.texture = texture
	}
}

// WithScrollRetryLimit caps how many frames a pending scroll-to-focus may
// wait before it is dropped. Zero retries forever.
func WithScrollRetryLimit(frames int) ViewOpt {
	return func(v *View) {
		v.scrollLimit = frames
	}
}

func NewView(rows RowList, nav NavMap, messages locale.Formatter, opts ...ViewOpt) *View {
	v := &View{
		rows:        rows,
		nav:         nav,
		messages:    messages,
		texture:     DefaultBlipTexture,
		scrollLimit: DefaultScrollRetryLimit,
		blips:       crew.BlipSet{},
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Bind attaches the view to a station. A nil grid means there is no map to
// draw on: the map is hidden and only the table is rendered.
func (v *View) Bind(station string, grid *uuid.UUID) {
	v.station = station
	v.mapVisible = grid != nil
	v.grid = uuid.Nil
	if grid != nil {
		v.grid = *grid
	}

	v.nav.SetVisible(v.mapVisible)
	v.applyBlips(v.computeBlips())
}

func (v *View) Station() string {
	return v.station
}

// Focus returns the tracked sensor, uuid.Nil when none.
func (v *View) Focus() uuid.UUID {
	return v.focus
}

// Rows returns a copy of the rendered rows.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rendered))
	copy(out, v.rendered)
	return out
}

// Blips returns a copy of the blips currently on the map.
func (v *View) Blips() crew.BlipSet {
	out := make(crew.BlipSet, len(v.blips))
	for id, b := range v.blips {
		out[id] = b
	}
	return out
}

// Render replaces the table and map contents with a new sensor snapshot.
func (v *View) Render(sensors []crew.SensorStatus, monitor uuid.UUID, monitorCoords *crew.Coordinates) {
	v.roster = nil
	v.monitor = nil
	v.rendered = nil

	if len(sensors) == 0 {
		v.rows.SetRows(nil)
		v.rows.SetPlaceholder(v.messages.Format(MsgNoServer, nil))
		v.applyBlips(crew.BlipSet{})
		return
	}
	v.rows.SetPlaceholder("")

	v.roster = crew.BuildRoster(sensors)
	if monitorCoords != nil {
		v.monitor = &crew.Monitor{ID: monitor, Coordinates: *monitorCoords}
	}

	for _, g := range v.roster.Groups {
		if len(v.rendered) > 0 {
			v.rendered = append(v.rendered, Row{Kind: RowSeparator})
		}

		header := g.Department
		if g.Catchall {
			header = v.messages.Format(MsgNoDepartment, nil)
		}
		v.rendered = append(v.rendered, Row{Kind: RowHeader, Header: header})

		for _, i := range g.Members {
			v.rendered = append(v.rendered, v.sensorRow(&v.roster.Sensors[i]))
		}
	}

	v.rows.SetRows(v.Rows())
	v.applyBlips(v.computeBlips())
}

func (v *View) sensorRow(s *crew.SensorStatus) Row {
	r := Row{
		Kind:           RowSensor,
		Sensor:         s,
		Hidden:         !s.Matches(v.filter),
		Disabled:       s.Coordinates == nil,
		Focused:        s.ID == v.focus,
		IndicatorColor: crew.ColorLimeGreen,
		HealthIcon:     crew.HealthIcon(s),
	}
	if r.Disabled {
		r.IndicatorColor = crew.ColorDarkRed
	}

	if v.icons != nil {
		if icon, ok := v.icons.Icon(s.JobIcon); ok {
			r.JobIcon = icon
		}
	}

	return r
}

// SetFilter applies a live name/job filter without rebuilding the table.
func (v *View) SetFilter(filter string) {
	v.filter = filter

	for i := range v.rendered {
		row := &v.rendered[i]
		if row.Kind != RowSensor {
			continue
		}
		hidden := !row.Sensor.Matches(filter)
		if hidden != row.Hidden {
			row.Hidden = hidden
			v.rows.UpdateRow(i, *row)
		}
	}

	v.applyBlips(v.computeBlips())
}

func (v *View) Filter() string {
	return v.filter
}

func (v *View) computeBlips() crew.BlipSet {
	return crew.ComputeBlips(crew.BlipState{
		Roster:     v.roster,
		Focus:      v.focus,
		Filter:     v.filter,
		MapVisible: v.mapVisible,
		Grid:       v.grid,
		Texture:    v.texture,
		Monitor:    v.monitor,
	}, v.frames)
}

// applyBlips pushes the difference between the current and next blip sets
// to the map, leaving unchanged blips untouched.
func (v *View) applyBlips(next crew.BlipSet) {
	diff := crew.DiffBlips(v.blips, next)

	for _, id := range diff.Removed {
		v.nav.RemoveBlip(id)
	}
	for _, id := range diff.Added {
		v.nav.SetBlip(id, next[id])
	}
	for _, id := range diff.Updated {
		v.nav.SetBlip(id, next[id])
	}

	v.blips = next
	v.nav.SetFocus(v.focus)
}
