package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-crewmon/internal/console"
	"github.com/pixil98/go-crewmon/internal/locale"
	"github.com/pixil98/go-crewmon/internal/naming"
	"github.com/pixil98/go-crewmon/internal/station"
	"github.com/pixil98/go-crewmon/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	/* Reference tables */
	Messages  AssetConfig[*locale.Message]   `json:"messages"`
	Species   AssetConfig[*naming.Species]   `json:"species"`
	Datasets  AssetConfig[*naming.Dataset]   `json:"datasets"`
	JobIcons  AssetConfig[*console.JobIcon]  `json:"job_icons"`
	Jobs      AssetConfig[*station.Job]      `json:"jobs"`
	Manifests AssetConfig[*station.Manifest] `json:"manifests"`

	/* Runtime tables */
	Crew AssetConfig[*station.Member] `json:"crew"`
}

// Tables is every store the application reads, loaded and resolved.
type Tables struct {
	Catalog   *locale.Catalog
	Names     *naming.Dictionary
	JobIcons  storage.Storer[*console.JobIcon]
	Jobs      storage.Storer[*station.Job]
	Manifests storage.Storer[*station.Manifest]
	Crew      storage.Storer[*station.Member]
}

func (c *StorageConfig) BuildTables() (*Tables, error) {
	messages, err := c.Messages.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating message store: %w", err)
	}
	species, err := c.Species.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating species store: %w", err)
	}
	datasets, err := c.Datasets.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating dataset store: %w", err)
	}
	icons, err := c.JobIcons.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating job icon store: %w", err)
	}
	jobs, err := c.Jobs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating job store: %w", err)
	}
	manifests, err := c.Manifests.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating manifest store: %w", err)
	}
	crew, err := c.Crew.BuildFileStore(storage.WithCreate())
	if err != nil {
		return nil, fmt.Errorf("creating crew store: %w", err)
	}

	names := &naming.Dictionary{
		Species:  species,
		Datasets: datasets,
	}
	if err := names.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return &Tables{
		Catalog:   locale.NewCatalog(messages),
		Names:     names,
		JobIcons:  icons,
		Jobs:      jobs,
		Manifests: manifests,
		Crew:      crew,
	}, nil
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Messages.Validate("messages"))
	el.Add(c.Species.Validate("species"))
	el.Add(c.Datasets.Validate("datasets"))
	el.Add(c.JobIcons.Validate("job_icons"))
	el.Add(c.Jobs.Validate("jobs"))
	el.Add(c.Manifests.Validate("manifests"))
	el.Add(c.Crew.ValidatePath("crew"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

// Validate checks that the table's directory exists.
func (c *AssetConfig[T]) Validate(name string) error {
	if err := c.ValidatePath(name); err != nil {
		return err
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

// ValidatePath only requires a path, for tables created on first use.
func (c *AssetConfig[T]) ValidatePath(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	return nil
}

func (c *AssetConfig[T]) BuildFileStore(opts ...storage.FileStoreOpt) (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path, opts...)
}
