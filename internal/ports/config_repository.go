package ports

import (
	"context"

	"github.com/gorchard/farmhand/internal/domain"
)

// ConfigRepository persists the runtime configuration document. Load
// migrates any legacy on-disk shape to the current one; Save always writes
// the current shape.
type ConfigRepository interface {
	Load(ctx context.Context) (domain.RuntimeConfig, error)
	Save(ctx context.Context, cfg domain.RuntimeConfig) error
}
