package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
)

const subjectPrefix = "crew.sensors."

// Bus is the publish/subscribe surface of a broker connection.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Snapshot is one sensor update for a station as sent over the wire.
type Snapshot struct {
	Station            string              `json:"station"`
	Grid               *uuid.UUID          `json:"grid,omitempty"`
	Monitor            uuid.UUID           `json:"monitor"`
	MonitorCoordinates *crew.Coordinates   `json:"monitor_coordinates,omitempty"`
	Sensors            []crew.SensorStatus `json:"sensors"`
	// Frames places moving sub-grids relative to their parent.
	Frames map[uuid.UUID]crew.Coordinates `json:"frames,omitempty"`
}

// Apply records the snapshot's frame offsets in ft.
func (s *Snapshot) Apply(ft *crew.FrameTable) {
	for id, c := range s.Frames {
		ft.Set(id, c)
	}
}

// Subject is the feed subject carrying snapshots for station.
func Subject(station string) string {
	return subjectPrefix + station
}

// PublishSnapshot encodes snap and publishes it on its station's subject.
func PublishSnapshot(bus Bus, snap *Snapshot) error {
	if snap.Station == "" {
		return fmt.Errorf("snapshot station is required")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := bus.Publish(Subject(snap.Station), data); err != nil {
		return fmt.Errorf("publishing snapshot for %s: %w", snap.Station, err)
	}
	return nil
}

// SubscribeSnapshots calls handler with every decodable snapshot for
// station. Malformed messages are logged and dropped.
func SubscribeSnapshots(bus Bus, station string, handler func(*Snapshot)) (func(), error) {
	subject := Subject(station)
	unsub, err := bus.Subscribe(subject, func(data []byte) {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			slog.Warn("dropping malformed snapshot", "subject", subject, "error", err)
			return
		}
		handler(&snap)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return unsub, nil
}
