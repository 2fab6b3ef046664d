package listener

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-crewmon/internal/messaging"
)

// Board holds the latest snapshot for every remote session to read.
type Board struct {
	mu      sync.RWMutex
	station string
	latest  *messaging.Snapshot
}

func NewBoard(station string) *Board {
	return &Board{station: station}
}

// Update replaces the latest snapshot. Snapshots for other stations are
// ignored.
func (b *Board) Update(snap *messaging.Snapshot) {
	if snap.Station != b.station {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = snap
}

// Latest returns a copy of the most recent snapshot, zero valued before the
// first update.
func (b *Board) Latest() messaging.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.latest == nil {
		return messaging.Snapshot{Station: b.station}
	}
	snap := *b.latest
	snap.Sensors = slices.Clone(b.latest.Sensors)
	return snap
}

func (b *Board) Station() string {
	return b.station
}

// BoardFeed keeps a Board current from a station's snapshot feed.
type BoardFeed struct {
	board *Board
	bus   messaging.Bus
	ready <-chan struct{}
}

// NewBoardFeed follows bus once ready is closed; a nil ready follows
// immediately.
func NewBoardFeed(board *Board, bus messaging.Bus, ready <-chan struct{}) *BoardFeed {
	return &BoardFeed{
		board: board,
		bus:   bus,
		ready: ready,
	}
}

func (f *BoardFeed) Start(ctx context.Context) error {
	if f.ready != nil {
		select {
		case <-f.ready:
		case <-ctx.Done():
			return nil
		}
	}

	unsub, err := messaging.SubscribeSnapshots(f.bus, f.board.Station(), f.board.Update)
	if err != nil {
		return fmt.Errorf("following station %s: %w", f.board.Station(), err)
	}
	defer unsub()

	<-ctx.Done()
	return nil
}
