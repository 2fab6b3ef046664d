package command

import (
	"fmt"

	"github.com/pixil98/go-crewmon/internal/messaging"
	"github.com/pixil98/go-crewmon/internal/naming"
	"github.com/pixil98/go-crewmon/internal/station"
	"github.com/pixil98/go-errors"
)

type StationConfig struct {
	Manifest        string  `json:"manifest"`
	FallbackSpecies string  `json:"fallback_species"`
	Step            float64 `json:"step"`
	Seed            *uint64 `json:"seed,omitempty"`
}

func (c *StationConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Manifest == "" {
		el.Add(fmt.Errorf("manifest is required"))
	}
	if c.Step < 0 {
		el.Add(fmt.Errorf("step must not be negative"))
	}

	return el.Err()
}

func (c *StationConfig) random() naming.Random {
	if c.Seed == nil {
		return nil
	}
	return naming.NewSeededRandom(*c.Seed)
}

// BuildManifest looks up and resolves the configured station manifest.
func (c *StationConfig) BuildManifest(t *Tables) (*station.Manifest, error) {
	m := t.Manifests.Get(c.Manifest)
	if m == nil {
		return nil, fmt.Errorf("manifest %q not found", c.Manifest)
	}
	if err := m.Resolve(t.Jobs); err != nil {
		return nil, fmt.Errorf("resolving manifest %s: %w", c.Manifest, err)
	}
	return m, nil
}

func (c *StationConfig) BuildGenerator(t *Tables) (*naming.Generator, error) {
	var opts []naming.GeneratorOpt
	if c.FallbackSpecies != "" {
		opts = append(opts, naming.WithFallbackSpecies(c.FallbackSpecies))
	}
	if r := c.random(); r != nil {
		opts = append(opts, naming.WithRandom(r))
	}

	g, err := naming.NewGenerator(t.Names.Species, t.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating name generator: %w", err)
	}
	return g, nil
}

func (c *StationConfig) BuildSimulator(t *Tables, manifest *station.Manifest, names station.Namer, bus messaging.Bus, ready <-chan struct{}) (*station.Simulator, error) {
	opts := []station.SimulatorOpt{station.WithReady(ready)}
	if c.Step > 0 {
		opts = append(opts, station.WithStep(c.Step))
	}
	if r := c.random(); r != nil {
		opts = append(opts, station.WithRandom(r))
	}

	return station.NewSimulator(manifest, t.Crew, names, bus, opts...)
}
