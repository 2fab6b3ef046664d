package display

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/locale"
)

const (
	MsgTitle        = "crew-monitoring-user-interface-title"
	MsgNoDepartment = "crew-monitoring-user-interface-no-department"
	MsgNoServer     = "crew-monitoring-user-interface-no-server"
	MsgNoPosition   = "crew-monitoring-user-interface-no-position"
)

// RosterText renders a sensor table as plain text for line terminals.
type RosterText struct {
	messages locale.Formatter
	width    int
}

type RosterTextOpt func(*RosterText)

func WithWidth(width int) RosterTextOpt {
	return func(r *RosterText) {
		r.width = width
	}
}

func NewRosterText(messages locale.Formatter, opts ...RosterTextOpt) *RosterText {
	r := &RosterText{
		messages: messages,
		width:    DefaultWidth,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render lays out sensors grouped by department. Rows failing filter are
// omitted and the focused sensor is marked with '>'.
func (r *RosterText) Render(station string, sensors []crew.SensorStatus, filter string, focus uuid.UUID) string {
	var sb strings.Builder

	title := r.messages.Format(MsgTitle, locale.Args{"station": station})
	sb.WriteString(Wrap(title, r.width))
	sb.WriteString("\n")

	if len(sensors) == 0 {
		sb.WriteString(Wrap(r.messages.Format(MsgNoServer, nil), r.width))
		sb.WriteString("\n")
		return sb.String()
	}

	// marker, indicator, three spaces and the health column take the rest.
	healthWidth := 9
	textWidth := max(r.width-healthWidth-5, 2)
	nameWidth := textWidth / 2
	jobWidth := textWidth - nameWidth

	roster := crew.BuildRoster(sensors)
	for gi, g := range roster.Groups {
		if gi > 0 {
			sb.WriteString(strings.Repeat("-", r.width))
			sb.WriteString("\n")
		}

		header := Capitalize(g.Department)
		if g.Catchall {
			header = r.messages.Format(MsgNoDepartment, nil)
		}
		sb.WriteString(header)
		sb.WriteString("\n")

		for _, i := range g.Members {
			s := &roster.Sensors[i]
			if !s.Matches(filter) {
				continue
			}

			marker := " "
			if s.ID == focus {
				marker = ">"
			}
			indicator := "+"
			if s.Coordinates == nil {
				indicator = "x"
			}

			fmt.Fprintf(&sb, "%s%s %s %s %s\n",
				marker,
				indicator,
				Cell(s.Name, nameWidth),
				Cell(s.Job, jobWidth),
				Cell(crew.HealthIcon(s), healthWidth),
			)
		}
	}

	return sb.String()
}

// Locate describes where the focused sensor is, for the track command.
func (r *RosterText) Locate(s *crew.SensorStatus) string {
	if s.Coordinates == nil {
		return Wrap(r.messages.Format(MsgNoPosition, locale.Args{"name": s.Label()}), r.width)
	}
	return Wrap(fmt.Sprintf("%s: %.1f, %.1f", s.Label(), s.Coordinates.X, s.Coordinates.Y), r.width)
}
