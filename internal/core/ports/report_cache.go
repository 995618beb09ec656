package ports

import (
	"context"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

// ReportCache is a best-effort read cache for the report list. A nil
// slice with a nil error means a cache miss; callers fall back to the
// repository on any error.
type ReportCache interface {
	GetList(ctx context.Context) ([]*domain.Report, error)
	SetList(ctx context.Context, reports []*domain.Report) error
	Invalidate(ctx context.Context) error
}
