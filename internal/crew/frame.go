package crew

import (
	"sync"

	"github.com/google/uuid"
)

// maxFrameDepth bounds parent walks so a cyclic table cannot hang a frame.
const maxFrameDepth = 32

// Transformer converts coordinates into another entity's frame.
type Transformer interface {
	ToFrame(c Coordinates, parent uuid.UUID) Coordinates
}

// FrameTable is a Transformer over a tree of translated frames. Entities
// missing from the table are treated as the world origin.
type FrameTable struct {
	mu     sync.RWMutex
	frames map[uuid.UUID]Coordinates
}

func NewFrameTable() *FrameTable {
	return &FrameTable{frames: map[uuid.UUID]Coordinates{}}
}

// Set places entity id at c within its parent's frame.
func (f *FrameTable) Set(id uuid.UUID, c Coordinates) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames[id] = c
}

func (f *FrameTable) Remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.frames, id)
}

func (f *FrameTable) ToFrame(c Coordinates, parent uuid.UUID) Coordinates {
	if c.Parent == parent {
		return c
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	wx, wy := f.world(c.Parent)
	px, py := f.world(parent)
	return Coordinates{
		Parent: parent,
		X:      c.X + wx - px,
		Y:      c.Y + wy - py,
	}
}

func (f *FrameTable) world(id uuid.UUID) (x, y float64) {
	for range maxFrameDepth {
		fr, ok := f.frames[id]
		if !ok {
			return x, y
		}
		x += fr.X
		y += fr.Y
		id = fr.Parent
	}
	return x, y
}
