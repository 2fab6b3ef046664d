package console

import (
	"math"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/rivo/tview"
)

const (
	DefaultZoom = 1.0

	minZoom = 0.125
	maxZoom = 8.0
	panStep = 2.0
)

// NavMap is a monitor.NavMap drawn with terminal cells. One map unit is
// zoom rows tall and twice as many columns wide.
type NavMap struct {
	*tview.Box

	blips   crew.BlipSet
	focus   uuid.UUID
	center  crew.Coordinates
	zoom    float64
	visible bool
	// onTrack receives blips chosen on the map itself.
	onTrack func(id uuid.UUID)
}

func NewNavMap() *NavMap {
	m := &NavMap{
		Box:     tview.NewBox(),
		blips:   crew.BlipSet{},
		zoom:    DefaultZoom,
		visible: true,
	}
	m.SetBorder(true)
	m.SetInputCapture(m.handleKey)
	return m
}

// SetTrackFunc sets the handler for a blip picked with the map keys.
func (m *NavMap) SetTrackFunc(fn func(id uuid.UUID)) {
	m.onTrack = fn
}

func (m *NavMap) SetVisible(visible bool) {
	m.visible = visible
}

func (m *NavMap) Visible() bool {
	return m.visible
}

func (m *NavMap) SetBlip(id uuid.UUID, blip crew.Blip) {
	m.blips[id] = blip
}

func (m *NavMap) RemoveBlip(id uuid.UUID) {
	delete(m.blips, id)
}

func (m *NavMap) SetFocus(id uuid.UUID) {
	m.focus = id
}

func (m *NavMap) CenterOn(c crew.Coordinates) {
	m.center = c
}

// project maps a blip position onto a cell relative to the map center.
func (m *NavMap) project(c crew.Coordinates, width, height int) (int, int) {
	col := width/2 + int(math.Round((c.X-m.center.X)*m.zoom*2))
	// Map y grows upward, screen rows grow downward.
	row := height/2 - int(math.Round((c.Y-m.center.Y)*m.zoom))
	return col, row
}

func (m *NavMap) Draw(screen tcell.Screen) {
	m.Box.DrawForSubclass(screen, m)
	if !m.visible {
		return
	}

	x, y, width, height := m.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	ids := m.drawOrder()
	for _, id := range ids {
		b := m.blips[id]
		col, row := m.project(b.Coordinates, width, height)
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}

		glyph := '•'
		if id == m.focus {
			glyph = '◉'
		}
		style := tcell.StyleDefault.Foreground(tcellColor(b.Color))
		screen.SetContent(x+col, y+row, glyph, nil, style)

		if id == m.focus && b.Label != "" {
			for i, r := range []rune(b.Label) {
				if col+2+i >= width {
					break
				}
				screen.SetContent(x+col+2+i, y+row, r, nil, tcell.StyleDefault)
			}
		}
	}
}

// drawOrder paints dimmed blips first so focused ones stay on top.
func (m *NavMap) drawOrder() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m.blips))
	for id := range m.blips {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		fa, fb := m.blips[a].Focused, m.blips[b].Focused
		switch {
		case fa == fb:
			return strings.Compare(a.String(), b.String())
		case fa:
			return 1
		default:
			return -1
		}
	})
	return ids
}

// selectable lists pickable blips ordered by label.
func (m *NavMap) selectable() []uuid.UUID {
	var ids []uuid.UUID
	for id, b := range m.blips {
		if b.Selectable {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		if c := strings.Compare(m.blips[a].Label, m.blips[b].Label); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// cycle moves the map selection by step through the selectable blips and
// reports the new pick.
func (m *NavMap) cycle(step int) {
	ids := m.selectable()
	if len(ids) == 0 || m.onTrack == nil {
		return
	}

	next := 0
	if i := slices.Index(ids, m.focus); i >= 0 {
		next = (i + step + len(ids)) % len(ids)
	} else if step < 0 {
		next = len(ids) - 1
	}

	id := ids[next]
	m.center = m.blips[id].Coordinates
	m.onTrack(id)
}

func (m *NavMap) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyTab:
		m.cycle(1)
	case tcell.KeyBacktab:
		m.cycle(-1)
	case tcell.KeyEscape:
		if m.onTrack != nil {
			m.onTrack(uuid.Nil)
		}
	case tcell.KeyUp:
		m.center.Y += panStep / m.zoom
	case tcell.KeyDown:
		m.center.Y -= panStep / m.zoom
	case tcell.KeyLeft:
		m.center.X -= panStep / m.zoom
	case tcell.KeyRight:
		m.center.X += panStep / m.zoom
	case tcell.KeyRune:
		switch ev.Rune() {
		case '+', '=':
			m.zoom = min(m.zoom*2, maxZoom)
		case '-':
			m.zoom = max(m.zoom/2, minZoom)
		default:
			return ev
		}
	default:
		return ev
	}
	return nil
}
