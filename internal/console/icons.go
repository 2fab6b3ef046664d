package console

import (
	"fmt"

	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/storage"
)

// JobIcon is the glyph shown for a job in the sensor table.
type JobIcon struct {
	Glyph string `json:"glyph"`
}

func (j *JobIcon) Validate() error {
	if j.Glyph == "" {
		return fmt.Errorf("glyph is required")
	}
	return nil
}

// IconTable looks job icons up in an asset store.
type IconTable struct {
	icons storage.Storer[*JobIcon]
}

func NewIconTable(icons storage.Storer[*JobIcon]) *IconTable {
	return &IconTable{icons: icons}
}

func (t *IconTable) Icon(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	icon := t.icons.Get(id)
	if icon == nil {
		return "", false
	}
	return icon.Glyph, true
}

var healthGlyphs = map[string]string{
	crew.IconAlive:    "♥",
	crew.IconDead:     "✝",
	crew.IconCritical: "!!!!",
	"health0":         "████",
	"health1":         "███░",
	"health2":         "██░░",
	"health3":         "█░░░",
}

func healthGlyph(icon string) string {
	if g, ok := healthGlyphs[icon]; ok {
		return g
	}
	return "?"
}
