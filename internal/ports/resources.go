package ports

import (
	"context"

	"github.com/bnema/clickloop-cli/internal/domain"
)

type ResourceSampler interface {
	Sample(ctx context.Context) (domain.ResourceSnapshot, error)
}
