package ports

import (
	"context"

	"github.com/bnema/clickloop-cli/internal/domain"
)

type PresetRepository interface {
	GetByName(ctx context.Context, name string) (domain.Preset, error)
	List(ctx context.Context) ([]domain.Preset, error)
	Save(ctx context.Context, preset domain.Preset) error
	Delete(ctx context.Context, name string) error
}
