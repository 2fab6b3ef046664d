package crew

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Health icon states of the crew monitoring status sprite.
const (
	IconAlive    = "alive"
	IconDead     = "dead"
	IconCritical = "critical"

	healthBuckets = 5
)

// Casers carry transform state, so each caller borrows its own.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Coordinates is a position relative to a parent entity's frame.
type Coordinates struct {
	Parent uuid.UUID `json:"parent"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}

// SensorStatus is one suit sensor reading as pushed by the station.
type SensorStatus struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Job         string       `json:"job"`
	Departments []string     `json:"departments,omitempty"`
	JobIcon     string       `json:"job_icon,omitempty"`
	Alive       bool         `json:"alive"`
	Damage      *float64     `json:"damage,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// InDepartment reports whether the sensor's job belongs to dept.
func (s *SensorStatus) InDepartment(dept string) bool {
	for _, d := range s.Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// Label is the text attached to the sensor's map blip.
func (s *SensorStatus) Label() string {
	return s.Name + ", " + s.Job
}

// Matches reports whether filter is a case-insensitive substring of the
// sensor's name or job. An empty filter matches everything.
func (s *SensorStatus) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	fold := folders.Get().(*cases.Caser)
	defer folders.Put(fold)

	f := fold.String(filter)
	return strings.Contains(fold.String(s.Name), f) || strings.Contains(fold.String(s.Job), f)
}

// HealthIcon maps vital state onto a status icon: dead overrides
// everything, otherwise damage falls into one of five buckets where the
// top bucket is critical. A missing or NaN reading counts as undamaged.
func HealthIcon(s *SensorStatus) string {
	if !s.Alive {
		return IconDead
	}
	if s.Damage == nil || math.IsNaN(*s.Damage) {
		return IconAlive
	}

	damage := min(max(*s.Damage, 0), 1)
	index := int(math.Floor(damage * healthBuckets))
	if index >= healthBuckets-1 {
		return IconCritical
	}
	return "health" + strconv.Itoa(index)
}
