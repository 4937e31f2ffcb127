package toml

import (
	"fmt"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Presets []presetSchema `toml:"presets"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported presets schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type presetSchema struct {
	Name      string       `toml:"name"`
	Config    configSchema `toml:"config"`
	UpdatedAt string       `toml:"updated_at,omitempty"`
}

type configSchema struct {
	X            float64 `toml:"x"`
	Y            float64 `toml:"y"`
	TrackPointer bool    `toml:"track_pointer,omitempty"`
	Kind         string  `toml:"kind"`
	Interval     string  `toml:"interval"`
	TargetApp    string  `toml:"target_app,omitempty"`
	MaxClicks    int     `toml:"max_clicks,omitempty"`
	MaxDuration  string  `toml:"max_duration,omitempty"`
	StopOnError  bool    `toml:"stop_on_error,omitempty"`
	Randomize    bool    `toml:"randomize,omitempty"`
	Variance     float64 `toml:"variance,omitempty"`
	ShowFeedback bool    `toml:"show_feedback,omitempty"`
}

func toSchema(preset domain.Preset) presetSchema {
	cfg := preset.Config
	schema := presetSchema{
		Name: preset.Name,
		Config: configSchema{
			X:            cfg.Destination.X,
			Y:            cfg.Destination.Y,
			TrackPointer: cfg.TrackPointer,
			Kind:         string(cfg.Kind),
			Interval:     cfg.Interval.String(),
			TargetApp:    cfg.TargetApp,
			MaxClicks:    cfg.MaxClicks,
			StopOnError:  cfg.StopOnError,
			Randomize:    cfg.Randomize,
			Variance:     cfg.Variance,
			ShowFeedback: cfg.ShowFeedback,
		},
	}
	if cfg.MaxDuration > 0 {
		schema.Config.MaxDuration = cfg.MaxDuration.String()
	}
	if !preset.UpdatedAt.IsZero() {
		schema.UpdatedAt = preset.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return schema
}

func fromSchema(schema presetSchema) domain.Preset {
	cfg := domain.ClickConfig{
		Destination:  domain.Point{X: schema.Config.X, Y: schema.Config.Y},
		TrackPointer: schema.Config.TrackPointer,
		Kind:         domain.ClickKind(schema.Config.Kind),
		TargetApp:    schema.Config.TargetApp,
		MaxClicks:    schema.Config.MaxClicks,
		StopOnError:  schema.Config.StopOnError,
		Randomize:    schema.Config.Randomize,
		Variance:     schema.Config.Variance,
		ShowFeedback: schema.Config.ShowFeedback,
	}
	if d, err := time.ParseDuration(schema.Config.Interval); err == nil {
		cfg.Interval = d
	}
	if schema.Config.MaxDuration != "" {
		if d, err := time.ParseDuration(schema.Config.MaxDuration); err == nil {
			cfg.MaxDuration = d
		}
	}

	preset := domain.Preset{Name: schema.Name, Config: cfg}
	if schema.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, schema.UpdatedAt); err == nil {
			preset.UpdatedAt = t
		}
	}

	return preset
}
