package command

import (
	"fmt"

	"github.com/pixil98/go-crewmon/internal/display"
	"github.com/pixil98/go-crewmon/internal/driver"
	"github.com/pixil98/go-crewmon/internal/listener"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tables, err := cfg.Storage.BuildTables()
	if err != nil {
		return nil, fmt.Errorf("loading storage: %w", err)
	}

	manifest, err := cfg.Station.BuildManifest(tables)
	if err != nil {
		return nil, err
	}

	names, err := cfg.Station.BuildGenerator(tables)
	if err != nil {
		return nil, err
	}

	nats, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	sim, err := cfg.Station.BuildSimulator(tables, manifest, names, nats, nats.Ready())
	if err != nil {
		return nil, fmt.Errorf("creating station simulator: %w", err)
	}

	// Setup the station driver
	drv := driver.NewDriver([]driver.Ticker{sim},
		driver.WithTickLength(cfg.tickInterval()),
		driver.WithName(manifest.Name),
	)

	// Create Listeners
	board := listener.NewBoard(manifest.Name)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		var textOpts []display.RosterTextOpt
		if l.Width > 0 {
			textOpts = append(textOpts, display.WithWidth(l.Width))
		}
		cm := listener.NewConnectionManager(board, display.NewRosterText(tables.Catalog, textOpts...))

		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	workers := service.WorkerList{
		"nats":      nats,
		"driver":    drv,
		"board":     listener.NewBoardFeed(board, nats, nats.Ready()),
		"listeners": &listeners,
	}

	if cfg.Console.Enabled {
		c, err := cfg.Console.BuildConsole(tables, nats, manifest.Name, nats.Ready())
		if err != nil {
			return nil, fmt.Errorf("creating console: %w", err)
		}
		workers["console"] = c
	}

	return workers, nil
}
