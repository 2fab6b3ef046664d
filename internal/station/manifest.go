package station

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/storage"
	"github.com/pixil98/go-errors"
)

// Job is one crew position the station staffs.
type Job struct {
	Title       string   `json:"title"`
	Departments []string `json:"departments"`
	Icon        string   `json:"icon"`
	// Species lists who may hold the job; empty means the manifest default.
	Species []string `json:"species,omitempty"`
	Slots   int      `json:"slots"`
	// Frame names the moving frame the job starts in; empty is the grid.
	Frame string `json:"frame,omitempty"`
}

func (j *Job) Validate() error {
	el := errors.NewErrorList()

	if j.Title == "" {
		el.Add(fmt.Errorf("title is required"))
	}
	if j.Slots < 1 {
		el.Add(fmt.Errorf("slots must be at least 1"))
	}
	for i, d := range j.Departments {
		if d == "" {
			el.Add(fmt.Errorf("department %d is empty", i))
		}
	}

	return el.Err()
}

// Frame is a moving sub-grid, such as a docked shuttle, offset from the
// station grid.
type Frame struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Manifest describes a simulated station and who works there.
type Manifest struct {
	Name           string                          `json:"name"`
	Radius         float64                         `json:"radius"`
	DefaultSpecies string                          `json:"default_species"`
	Monitor        Frame                           `json:"monitor"`
	Frames         []Frame                         `json:"frames,omitempty"`
	Jobs           []storage.SmartIdentifier[*Job] `json:"jobs"`
}

func (m *Manifest) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if m.Radius <= 0 {
		el.Add(fmt.Errorf("radius must be positive"))
	}
	if len(m.Jobs) == 0 {
		el.Add(fmt.Errorf("at least one job is required"))
	}
	for i, j := range m.Jobs {
		if err := j.Validate(); err != nil {
			el.Add(fmt.Errorf("job %d: %w", i, err))
		}
	}

	seen := map[string]bool{}
	for _, f := range m.Frames {
		if f.Name == "" {
			el.Add(fmt.Errorf("frame name is required"))
			continue
		}
		if seen[f.Name] {
			el.Add(fmt.Errorf("duplicate frame %q", f.Name))
		}
		seen[f.Name] = true
	}

	return el.Err()
}

// Resolve binds job references and checks that every job's frame exists.
func (m *Manifest) Resolve(jobs storage.Storer[*Job]) error {
	el := errors.NewErrorList()

	frames := map[string]bool{}
	for _, f := range m.Frames {
		frames[f.Name] = true
	}

	for i := range m.Jobs {
		if err := m.Jobs[i].Resolve(jobs); err != nil {
			el.Add(err)
			continue
		}
		job := m.Jobs[i].Get()
		if job.Frame != "" && !frames[job.Frame] {
			el.Add(fmt.Errorf("job %s: unknown frame %q", m.Jobs[i].Key(), job.Frame))
		}
	}

	return el.Err()
}

// Grid is the stable identity of the station's map grid.
func (m *Manifest) Grid() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("station/"+m.Name))
}

// FrameID is the stable identity of the named frame; "" is the grid.
func (m *Manifest) FrameID(name string) uuid.UUID {
	if name == "" {
		return m.Grid()
	}
	return uuid.NewSHA1(m.Grid(), []byte(name))
}
