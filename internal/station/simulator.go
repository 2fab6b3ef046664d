package station

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/messaging"
	"github.com/pixil98/go-crewmon/internal/naming"
	"github.com/pixil98/go-crewmon/internal/storage"
)

const (
	DefaultStep = 0.5

	lossChance    = 0.01
	regainChance  = 0.3
	injuryChance  = 0.05
	healingChance = 0.1
)

var crewGenders = []naming.Gender{
	naming.GenderMale,
	naming.GenderFemale,
	naming.GenderDemiMasc,
	naming.GenderDemiFemme,
	naming.GenderEpicene,
	naming.GenderNeuter,
}

// Namer names newly hired crew.
type Namer interface {
	Name(species string, gender naming.Gender) string
}

type tracked struct {
	id     uuid.UUID
	member *Member
	frame  uuid.UUID
	x, y   float64
	damage float64
	alive  bool
	// lost sensors report no coordinates.
	lost bool
}

// Simulator walks a station's crew around and publishes their suit sensor
// readings every tick.
type Simulator struct {
	manifest *Manifest
	bus      messaging.Bus
	rnd      naming.Random
	ready    <-chan struct{}
	step     float64

	mu   sync.Mutex
	crew []*tracked
}

type SimulatorOpt func(*Simulator)

func WithRandom(r naming.Random) SimulatorOpt {
	return func(s *Simulator) {
		s.rnd = r
	}
}

// WithReady holds publishing back until ready is closed.
func WithReady(ready <-chan struct{}) SimulatorOpt {
	return func(s *Simulator) {
		s.ready = ready
	}
}

// WithStep sets how far a crew member may move per tick on each axis.
func WithStep(step float64) SimulatorOpt {
	return func(s *Simulator) {
		s.step = step
	}
}

// NewSimulator staffs the manifest from the member store, hiring and saving
// new members for every unfilled job slot. The manifest must be resolved.
func NewSimulator(manifest *Manifest, members storage.Storer[*Member], names Namer, bus messaging.Bus, opts ...SimulatorOpt) (*Simulator, error) {
	s := &Simulator{
		manifest: manifest,
		bus:      bus,
		rnd:      naming.NewSeededRandom(uint64(manifest.Grid().ID())),
		step:     DefaultStep,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.staff(members, names); err != nil {
		return nil, fmt.Errorf("staffing %s: %w", manifest.Name, err)
	}

	return s, nil
}

func (s *Simulator) staff(members storage.Storer[*Member], names Namer) error {
	jobs := map[string]*Job{}
	for _, j := range s.manifest.Jobs {
		jobs[j.Key()] = j.Get()
	}

	all := members.GetAll()
	ids := make([]storage.Identifier, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	filled := map[string]int{}
	for _, id := range ids {
		m := all[id]
		job, ok := jobs[m.Job.Key()]
		if !ok {
			slog.Warn("skipping crew member with unlisted job", "member", id, "job", m.Job.Key())
			continue
		}
		if filled[m.Job.Key()] >= job.Slots {
			continue
		}

		sensorID, err := uuid.Parse(string(id))
		if err != nil {
			return fmt.Errorf("member %s: invalid sensor id: %w", id, err)
		}
		m.Job = storage.NewResolvedSmartIdentifier(m.Job.Key(), job)
		filled[m.Job.Key()]++
		s.crew = append(s.crew, s.place(sensorID, m))
	}

	for _, ref := range s.manifest.Jobs {
		job := ref.Get()
		for filled[ref.Key()] < job.Slots {
			m := s.hire(ref.Key(), job, names)
			sensorID := uuid.New()
			if err := members.Save(sensorID.String(), m); err != nil {
				return fmt.Errorf("saving member %s: %w", m.Name, err)
			}
			slog.Info("hired crew member", "name", m.Name, "job", job.Title, "species", m.Species)

			filled[ref.Key()]++
			s.crew = append(s.crew, s.place(sensorID, m))
		}
	}

	return nil
}

func (s *Simulator) hire(key string, job *Job, names Namer) *Member {
	species := s.manifest.DefaultSpecies
	if len(job.Species) > 0 {
		species = job.Species[s.rnd.Pick(len(job.Species))]
	}
	gender := crewGenders[s.rnd.Pick(len(crewGenders))]

	return &Member{
		Name:    names.Name(species, gender),
		Species: species,
		Gender:  gender,
		Job:     storage.NewResolvedSmartIdentifier(key, job),
	}
}

func (s *Simulator) place(id uuid.UUID, m *Member) *tracked {
	return &tracked{
		id:     id,
		member: m,
		frame:  s.manifest.FrameID(m.Job.Get().Frame),
		x:      s.offset(),
		y:      s.offset(),
		alive:  true,
	}
}

// offset is a random starting coordinate within half the station radius.
func (s *Simulator) offset() float64 {
	return float64(s.rnd.Pick(201)-100) / 200 * s.manifest.Radius
}

func (s *Simulator) Tick(ctx context.Context) error {
	if s.ready != nil {
		select {
		case <-s.ready:
		default:
			slog.DebugContext(ctx, "feed not ready, skipping tick", "station", s.manifest.Name)
			return nil
		}
	}

	s.mu.Lock()
	for _, t := range s.crew {
		s.advance(t)
	}
	snap := s.snapshot()
	s.mu.Unlock()

	if err := messaging.PublishSnapshot(s.bus, snap); err != nil {
		return fmt.Errorf("publishing sensors: %w", err)
	}
	return nil
}

func (s *Simulator) advance(t *tracked) {
	if !t.alive {
		return
	}

	x := t.x + float64(s.rnd.Pick(3)-1)*s.step
	y := t.y + float64(s.rnd.Pick(3)-1)*s.step
	if math.Hypot(x, y) <= s.manifest.Radius {
		t.x, t.y = x, y
	}

	if t.lost {
		t.lost = !s.rnd.Prob(regainChance)
	} else {
		t.lost = s.rnd.Prob(lossChance)
	}

	if s.rnd.Prob(injuryChance) {
		t.damage += 0.1 * float64(1+s.rnd.Pick(3))
	}
	if s.rnd.Prob(healingChance) {
		t.damage -= 0.05
	}
	t.damage = min(max(t.damage, 0), 1)
	if t.damage >= 1 {
		t.alive = false
		slog.Info("crew member died", "name", t.member.Name)
	}
}

// Snapshot returns the current sensor readings without advancing the
// simulation.
func (s *Simulator) Snapshot() *messaging.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Simulator) snapshot() *messaging.Snapshot {
	grid := s.manifest.Grid()
	snap := &messaging.Snapshot{
		Station: s.manifest.Name,
		Grid:    &grid,
		Monitor: s.MonitorID(),
		MonitorCoordinates: &crew.Coordinates{
			Parent: grid,
			X:      s.manifest.Monitor.X,
			Y:      s.manifest.Monitor.Y,
		},
		Frames: map[uuid.UUID]crew.Coordinates{},
	}

	for _, f := range s.manifest.Frames {
		snap.Frames[s.manifest.FrameID(f.Name)] = crew.Coordinates{Parent: grid, X: f.X, Y: f.Y}
	}

	for _, t := range s.crew {
		job := t.member.Job.Get()
		damage := t.damage
		status := crew.SensorStatus{
			ID:          t.id,
			Name:        t.member.Name,
			Job:         job.Title,
			Departments: slices.Clone(job.Departments),
			JobIcon:     job.Icon,
			Alive:       t.alive,
			Damage:      &damage,
		}
		if !t.lost {
			status.Coordinates = &crew.Coordinates{Parent: t.frame, X: t.x, Y: t.y}
		}
		snap.Sensors = append(snap.Sensors, status)
	}

	return snap
}

// MonitorID is the identity of the station's crew monitoring console.
func (s *Simulator) MonitorID() uuid.UUID {
	return uuid.NewSHA1(s.manifest.Grid(), []byte("monitor"))
}
