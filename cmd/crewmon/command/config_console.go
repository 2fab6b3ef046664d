package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-crewmon/internal/console"
	"github.com/pixil98/go-crewmon/internal/messaging"
	"github.com/pixil98/go-crewmon/internal/monitor"
	"github.com/pixil98/go-errors"
)

type ConsoleConfig struct {
	Enabled          bool   `json:"enabled"`
	FrameInterval    string `json:"frame_interval"`
	ScrollRetryLimit *int   `json:"scroll_retry_limit,omitempty"`
	BlipTexture      string `json:"blip_texture"`
}

func (c *ConsoleConfig) Validate() error {
	el := errors.NewErrorList()

	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing frame_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("frame_interval must be positive"))
		}
	}
	if c.ScrollRetryLimit != nil && *c.ScrollRetryLimit < 0 {
		el.Add(fmt.Errorf("scroll_retry_limit must not be negative"))
	}

	return el.Err()
}

func (c *ConsoleConfig) BuildConsole(t *Tables, bus messaging.Bus, stationName string, ready <-chan struct{}) (*console.Console, error) {
	viewOpts := []monitor.ViewOpt{
		monitor.WithJobIcons(console.NewIconTable(t.JobIcons)),
	}
	if c.ScrollRetryLimit != nil {
		viewOpts = append(viewOpts, monitor.WithScrollRetryLimit(*c.ScrollRetryLimit))
	}
	if c.BlipTexture != "" {
		viewOpts = append(viewOpts, monitor.WithBlipTexture(c.BlipTexture))
	}

	opts := []console.ConsoleOpt{
		console.WithReady(ready),
		console.WithViewOpts(viewOpts...),
	}
	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing frame_interval: %w", err)
		}
		opts = append(opts, console.WithFrameInterval(d))
	}

	return console.NewConsole(bus, stationName, t.Catalog, opts...), nil
}
