package locale

import (
	"fmt"
	"log/slog"
	"text/template"

	"github.com/pixil98/go-crewmon/internal/storage"
)

// Args are the named values substituted into a message template.
type Args map[string]any

// Formatter resolves a message key into display text.
type Formatter interface {
	Format(key string, args Args) string
}

// Message is a single localized string loaded from the locale table.
// Templates use text/template syntax with sprig functions, e.g.
// "The {{ .first }} of {{ .last }}".
type Message struct {
	Template string `json:"template"`

	tmpl *template.Template
}

func (m *Message) Validate() error {
	if m.Template == "" {
		return fmt.Errorf("template is required")
	}
	tmpl, err := parseTemplate("message", m.Template)
	if err != nil {
		return err
	}
	m.tmpl = tmpl
	return nil
}

// Catalog formats messages from a locale table. Lookups never fail: a
// missing or broken message yields its key and a warning.
type Catalog struct {
	messages storage.Storer[*Message]
}

func NewCatalog(messages storage.Storer[*Message]) *Catalog {
	return &Catalog{messages: messages}
}

func (c *Catalog) Format(key string, args Args) string {
	msg := c.messages.Get(key)
	if msg == nil {
		slog.Warn("missing locale message", "key", key)
		return key
	}

	if msg.tmpl == nil {
		if err := msg.Validate(); err != nil {
			slog.Warn("invalid locale message", "key", key, "error", err)
			return key
		}
	}

	out, err := execTemplate(msg.tmpl, args)
	if err != nil {
		slog.Warn("formatting locale message", "key", key, "error", err)
		return key
	}
	return out
}
