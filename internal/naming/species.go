package naming

import (
	"fmt"

	"github.com/pixil98/go-crewmon/internal/storage"
	"github.com/pixil98/go-errors"
)

// Dataset is a flat list of name fragments.
type Dataset struct {
	Values []string `json:"values"`
}

func (d *Dataset) Validate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("values must not be empty")
	}
	for i, v := range d.Values {
		if v == "" {
			return fmt.Errorf("value %d is empty", i)
		}
	}
	return nil
}

// Species holds the naming configuration of one humanoid species.
type Species struct {
	Name             string                            `json:"name"`
	Naming           Pattern                           `json:"naming"`
	MaleFirstNames   storage.SmartIdentifier[*Dataset] `json:"male_first_names"`
	FemaleFirstNames storage.SmartIdentifier[*Dataset] `json:"female_first_names"`
	LastNames        storage.SmartIdentifier[*Dataset] `json:"last_names"`
}

func (s *Species) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if _, ok := patternNames[s.Naming]; !ok {
		el.Add(fmt.Errorf("unknown naming pattern: %d", int(s.Naming)))
	}
	el.Add(s.MaleFirstNames.Validate())
	el.Add(s.FemaleFirstNames.Validate())
	el.Add(s.LastNames.Validate())

	return el.Err()
}

// Resolve binds the species' dataset references.
func (s *Species) Resolve(datasets storage.Storer[*Dataset]) error {
	el := errors.NewErrorList()
	el.Add(s.MaleFirstNames.Resolve(datasets))
	el.Add(s.FemaleFirstNames.Resolve(datasets))
	el.Add(s.LastNames.Resolve(datasets))
	return el.Err()
}

// Dictionary groups the tables the generator reads from.
type Dictionary struct {
	Species  storage.Storer[*Species]
	Datasets storage.Storer[*Dataset]
}

// Resolve resolves every species' dataset references.
func (d *Dictionary) Resolve() error {
	for id, sp := range d.Species.GetAll() {
		if err := sp.Resolve(d.Datasets); err != nil {
			return fmt.Errorf("species %s: %w", id, err)
		}
	}
	return nil
}
