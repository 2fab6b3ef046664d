package console

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/locale"
	"github.com/pixil98/go-crewmon/internal/messaging"
	"github.com/pixil98/go-crewmon/internal/monitor"
	"github.com/rivo/tview"
)

const (
	MsgTitle  = "crew-monitoring-user-interface-title"
	MsgFilter = "crew-monitoring-user-interface-filter"

	DefaultFrameInterval = time.Second / 30
)

// Console is the terminal crew monitor. It subscribes to a station's feed
// and runs the monitor view inside a tview application.
type Console struct {
	app      *tview.Application
	layout   *tview.Flex
	rows     *RowTable
	nav      *NavMap
	filter   *tview.InputField
	view     *monitor.View
	frames   *crew.FrameTable
	messages locale.Formatter

	bus     messaging.Bus
	ready   <-chan struct{}
	station string
	grid    *uuid.UUID

	frameInterval time.Duration
	viewOpts      []monitor.ViewOpt
}

type ConsoleOpt func(*Console)

// WithReady delays subscribing until ready is closed.
func WithReady(ready <-chan struct{}) ConsoleOpt {
	return func(c *Console) {
		c.ready = ready
	}
}

func WithFrameInterval(d time.Duration) ConsoleOpt {
	return func(c *Console) {
		c.frameInterval = d
	}
}

func WithViewOpts(opts ...monitor.ViewOpt) ConsoleOpt {
	return func(c *Console) {
		c.viewOpts = append(c.viewOpts, opts...)
	}
}

func NewConsole(bus messaging.Bus, station string, messages locale.Formatter, opts ...ConsoleOpt) *Console {
	c := &Console{
		app:           tview.NewApplication(),
		rows:          NewRowTable(),
		nav:           NewNavMap(),
		filter:        tview.NewInputField(),
		frames:        crew.NewFrameTable(),
		messages:      messages,
		bus:           bus,
		station:       station,
		frameInterval: DefaultFrameInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	viewOpts := append([]monitor.ViewOpt{monitor.WithTransformer(c.frames)}, c.viewOpts...)
	c.view = monitor.NewView(c.rows, c.nav, messages, viewOpts...)

	c.rows.SetSelectedFunc(c.view.Select)
	c.nav.SetTrackFunc(c.view.TrackFromMap)

	c.filter.SetLabel(messages.Format(MsgFilter, nil) + " ")
	c.filter.SetChangedFunc(c.view.SetFilter)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(c.filter, 1, 0, false).
		AddItem(c.rows, 0, 1, true)
	c.layout = tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(c.nav, 0, 1, false)
	c.layout.SetBorder(true)
	c.layout.SetTitle(messages.Format(MsgTitle, locale.Args{"station": station}))

	c.app.SetRoot(c.layout, true)
	c.app.SetInputCapture(c.handleKey)

	// Start unbound: no grid, no map until the first snapshot says otherwise.
	c.bind(nil)

	return c
}

func (c *Console) Start(ctx context.Context) error {
	if c.ready != nil {
		select {
		case <-c.ready:
		case <-ctx.Done():
			return nil
		}
	}

	unsub, err := messaging.SubscribeSnapshots(c.bus, c.station, func(snap *messaging.Snapshot) {
		c.app.QueueUpdateDraw(func() {
			c.apply(snap)
		})
	})
	if err != nil {
		return fmt.Errorf("subscribing to station %s: %w", c.station, err)
	}
	defer unsub()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.tickFrames(runCtx)
	go func() {
		<-runCtx.Done()
		c.app.Stop()
	}()

	slog.InfoContext(ctx, "crew monitor console started", "station", c.station)

	if err := c.app.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}

func (c *Console) tickFrames(ctx context.Context) {
	ticker := time.NewTicker(c.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// The view is only touched on the UI goroutine.
			c.app.QueueUpdateDraw(c.view.FrameUpdate)
		}
	}
}

// apply hands one snapshot to the view. Must run on the UI goroutine.
func (c *Console) apply(snap *messaging.Snapshot) {
	if !sameGrid(c.grid, snap.Grid) {
		c.bind(snap.Grid)
	}

	snap.Apply(c.frames)
	c.view.Render(snap.Sensors, snap.Monitor, snap.MonitorCoordinates)
}

func (c *Console) bind(grid *uuid.UUID) {
	c.grid = grid
	c.view.Bind(c.station, grid)

	// A hidden map gives its width to the table.
	if c.nav.Visible() {
		c.layout.ResizeItem(c.nav, 0, 1)
	} else {
		c.layout.ResizeItem(c.nav, 0, 0)
	}
}

func sameGrid(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// handleKey switches keyboard focus between the filter, table and map.
func (c *Console) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyF2:
		c.app.SetFocus(c.filter)
	case tcell.KeyF3:
		c.app.SetFocus(c.rows)
	case tcell.KeyF4:
		if c.nav.Visible() {
			c.app.SetFocus(c.nav)
		}
	default:
		return ev
	}
	return nil
}
