package naming

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-crewmon/internal/locale"
	"github.com/pixil98/go-crewmon/internal/storage"
)

const DefaultFallbackSpecies = "Human"

// Generator builds humanoid names from species naming tables.
type Generator struct {
	species  storage.Storer[*Species]
	messages locale.Formatter
	rnd      Random
	fallback string
}

type GeneratorOpt func(*Generator)

// WithRandom replaces the package-level random source.
func WithRandom(r Random) GeneratorOpt {
	return func(g *Generator) {
		g.rnd = r
	}
}

// WithFallbackSpecies sets the species used when a lookup misses.
func WithFallbackSpecies(id string) GeneratorOpt {
	return func(g *Generator) {
		g.fallback = id
	}
}

// NewGenerator expects species whose dataset references are already
// resolved. The fallback species must exist so that Name can always answer.
func NewGenerator(species storage.Storer[*Species], messages locale.Formatter, opts ...GeneratorOpt) (*Generator, error) {
	g := &Generator{
		species:  species,
		messages: messages,
		rnd:      globalRandom{},
		fallback: DefaultFallbackSpecies,
	}

	for _, opt := range opts {
		opt(g)
	}

	sp := species.Get(g.fallback)
	if sp == nil {
		return nil, fmt.Errorf("fallback species %q not found", g.fallback)
	}
	if sp.MaleFirstNames.Get() == nil || sp.FemaleFirstNames.Get() == nil || sp.LastNames.Get() == nil {
		return nil, fmt.Errorf("fallback species %q is not resolved", g.fallback)
	}

	return g, nil
}

// Name returns a full name for a member of the given species.
func (g *Generator) Name(species string, gender Gender) string {
	sp := g.species.Get(species)
	if sp == nil {
		slog.Warn("unable to find species for name, using fallback", "species", species, "fallback", g.fallback)
		sp = g.species.Get(g.fallback)
	}

	key := sp.Naming.MessageKey()

	// Draw order follows the template's field order.
	switch sp.Naming {
	case PatternFirst:
		return g.messages.Format(key, locale.Args{
			"first": g.FirstName(sp, gender),
		})
	case PatternFirstDashFirst:
		first1 := g.FirstName(sp, gender)
		first2 := g.FirstName(sp, gender)
		return g.messages.Format(key, locale.Args{
			"first1": first1,
			"first2": first2,
		})
	case PatternLastFirst:
		last := g.LastName(sp)
		first := g.FirstName(sp, gender)
		return g.messages.Format(key, locale.Args{
			"last":  last,
			"first": first,
		})
	case PatternLastNoFirst, PatternTheFirstOfLast, PatternFirstDashLast:
		first := g.FirstName(sp, gender)
		last := g.LastName(sp)
		return g.messages.Format(key, locale.Args{
			"first": first,
			"last":  last,
		})
	default:
		first := g.FirstName(sp, gender)
		last := g.LastName(sp)
		return g.messages.Format(PatternFirstLast.MessageKey(), locale.Args{
			"first": first,
			"last":  last,
		})
	}
}

// FirstName draws one first name. Without a masculine or feminine gender
// each draw flips a fair coin between the two tables.
func (g *Generator) FirstName(sp *Species, gender Gender) string {
	switch {
	case gender.masculine():
		return g.pick(sp.MaleFirstNames.Get())
	case gender.feminine():
		return g.pick(sp.FemaleFirstNames.Get())
	case g.rnd.Prob(0.5):
		return g.pick(sp.MaleFirstNames.Get())
	default:
		return g.pick(sp.FemaleFirstNames.Get())
	}
}

// LastName draws one last name; gender never applies.
func (g *Generator) LastName(sp *Species) string {
	return g.pick(sp.LastNames.Get())
}

func (g *Generator) pick(ds *Dataset) string {
	return ds.Values[g.rnd.Pick(len(ds.Values))]
}
