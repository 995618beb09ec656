package ports

import (
	"context"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	// ListByTimestampDesc returns all reports, newest first.
	ListByTimestampDesc(ctx context.Context) ([]*domain.Report, error)
	// UpdateStatus applies a new status and returns the updated report.
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error)
	DeleteByID(ctx context.Context, id string) error
}
