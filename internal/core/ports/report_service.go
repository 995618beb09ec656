package ports

import (
	"context"

	"github.com/roadwatch/roadwatch-api/internal/core/auth"
	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

// CreateReportInput carries all data needed to create a report. Identity
// is the resolved caller identity; the service consults the policy and
// stamps ownership from it.
type CreateReportInput struct {
	Identity    auth.Identity
	Description string
	ImageURL    string
	// Location is nil when the caller omitted the coordinate pair, which
	// is invalid input; (0, 0) is a legitimate coordinate.
	Location *domain.Location
	// UserName is the display name supplied by the caller. When empty the
	// principal's email is used, and "Anonymous" as the final fallback.
	UserName string
}

// UpdateStatusInput carries a status change request.
type UpdateStatusInput struct {
	Identity auth.Identity
	ReportID string
	Status   domain.ReportStatus
}

// DeleteReportInput carries a delete request.
type DeleteReportInput struct {
	Identity auth.Identity
	ReportID string
}

// DeleteResult confirms a deletion, referencing the removed report.
type DeleteResult struct {
	ID string
}

// ReportService defines the per-endpoint access contract for reports:
// identity is already resolved, the service decides whether the action
// proceeds and performs the effect.
type ReportService interface {
	List(ctx context.Context, identity auth.Identity) ([]*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	Create(ctx context.Context, input CreateReportInput) (*domain.Report, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Report, error)
	Delete(ctx context.Context, input DeleteReportInput) (*DeleteResult, error)
}
