package domain

import (
	"fmt"
	"strings"
	"time"
)

// Preset is a named, persisted click configuration. Presets belong to the
// CLI layer; the engine only ever sees the embedded ClickConfig.
type Preset struct {
	Name      string
	Config    ClickConfig
	UpdatedAt time.Time
}

func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}
