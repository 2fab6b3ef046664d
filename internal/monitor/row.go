package monitor

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
)

type RowKind int

const (
	RowSeparator RowKind = iota
	RowHeader
	RowSensor
)

// Row is one line of the sensor table as handed to the RowList.
type Row struct {
	Kind RowKind

	// Header is the department title of a RowHeader.
	Header string

	// Sensor points into the current roster for RowSensor rows.
	Sensor *crew.SensorStatus

	// Hidden rows stay in the table but fail the live filter.
	Hidden bool
	// Disabled rows have no coordinates and cannot be selected.
	Disabled bool
	Focused  bool

	IndicatorColor color.RGBA
	HealthIcon     string
	// JobIcon is empty when the job icon table has no entry.
	JobIcon string
}

// ID is the sensor identity of a RowSensor row, uuid.Nil otherwise.
func (r *Row) ID() uuid.UUID {
	if r.Kind != RowSensor || r.Sensor == nil {
		return uuid.Nil
	}
	return r.Sensor.ID
}

// RowList is the scrolling table the view fills.
type RowList interface {
	// SetPlaceholder shows text instead of the table; "" hides it.
	SetPlaceholder(text string)
	SetRows(rows []Row)
	UpdateRow(index int, row Row)
	RowHeight(index int) float64
	ScrollOffset() float64
	SetScrollTarget(offset float64)
}

// NavMap is the map control that draws blips.
type NavMap interface {
	SetVisible(visible bool)
	SetBlip(id uuid.UUID, blip crew.Blip)
	RemoveBlip(id uuid.UUID)
	SetFocus(id uuid.UUID)
	CenterOn(c crew.Coordinates)
}

// JobIcons resolves job icon identifiers into displayable icons.
type JobIcons interface {
	Icon(id string) (string, bool)
}
