package station

import (
	"fmt"

	"github.com/pixil98/go-crewmon/internal/naming"
	"github.com/pixil98/go-crewmon/internal/storage"
	"github.com/pixil98/go-errors"
)

// Member is a persisted crew member. The asset id is the member's sensor
// identity.
type Member struct {
	Name    string                        `json:"name"`
	Species string                        `json:"species"`
	Gender  naming.Gender                 `json:"gender"`
	Job     storage.SmartIdentifier[*Job] `json:"job"`
}

func (m *Member) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	el.Add(m.Job.Validate())

	return el.Err()
}
