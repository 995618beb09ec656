package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roadwatch/roadwatch-api/internal/core/auth"
	"github.com/roadwatch/roadwatch-api/internal/core/domain"
	"github.com/roadwatch/roadwatch-api/internal/core/ports"
)

// ReportService is the access controller for report endpoints: it
// composes the resolved identity, the authorization policy, and the
// persistence collaborator. It holds no per-request state.
type ReportService struct {
	repo   ports.ReportRepository
	cache  ports.ReportCache
	logger zerolog.Logger
}

// NewReportService creates a ReportService. cache may be nil, in which
// case every list goes to the repository.
func NewReportService(repo ports.ReportRepository, cache ports.ReportCache, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, cache: cache, logger: logger}
}

// List returns all reports, newest first. Public: every identity state
// is allowed. Served from cache when fresh; cache failures fall back to
// the repository.
func (s *ReportService) List(ctx context.Context, identity auth.Identity) ([]*domain.Report, error) {
	if d := auth.CanListReports(identity); !d.Allowed {
		return nil, denialError(identity, d)
	}

	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("report list cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	reports, err := s.repo.ListByTimestampDesc(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, reports); err != nil {
			s.logger.Warn().Err(err).Msg("report list cache write failed")
		}
	}
	return reports, nil
}

// Get returns a single report by id. Public.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new report owned by the authenticated caller.
// Validation runs before any repository call.
func (s *ReportService) Create(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
	if d := auth.CanCreateReport(input.Identity); !d.Allowed {
		return nil, denialError(input.Identity, d)
	}
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if input.Location == nil {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if err := validateLocation(*input.Location); err != nil {
		return nil, err
	}

	principal := input.Identity.Principal
	userName := input.UserName
	if userName == "" {
		userName = principal.Email
	}
	if userName == "" {
		userName = "Anonymous"
	}

	authorID := principal.ID
	report := &domain.Report{
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Location:    *input.Location,
		Status:      domain.StatusReported,
		UserName:    userName,
		AuthorID:    &authorID,
		Timestamp:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.logger.Info().Str("report_id", created.ID).Str("author_id", authorID).Msg("report created")
	return created, nil
}

// UpdateStatus applies a new status to a report. Administrators only.
// Re-applying the current status is an allowed no-op.
func (s *ReportService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Report, error) {
	if d := auth.CanUpdateStatus(input.Identity); !d.Allowed {
		return nil, denialError(input.Identity, d)
	}
	if input.Status == "" {
		return nil, fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, input.ReportID, input.Status)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.logger.Info().Str("report_id", updated.ID).Str("status", string(updated.Status)).Msg("report status updated")
	return updated, nil
}

// Delete removes a report. The target is resolved first so an unknown id
// reports not-found rather than a permission denial; ownership is then
// checked against the fetched record.
func (s *ReportService) Delete(ctx context.Context, input ports.DeleteReportInput) (*ports.DeleteResult, error) {
	report, err := s.repo.FindByID(ctx, input.ReportID)
	if err != nil {
		return nil, err
	}

	if d := auth.CanDeleteReport(input.Identity, report); !d.Allowed {
		return nil, denialError(input.Identity, d)
	}

	if err := s.repo.DeleteByID(ctx, report.ID); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.logger.Info().Str("report_id", report.ID).Msg("report deleted")
	return &ports.DeleteResult{ID: report.ID}, nil
}

func (s *ReportService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("report list cache invalidation failed")
	}
}

// denialError maps a policy denial to the error taxonomy: a caller
// without a verified principal is unauthenticated, a verified caller
// without privilege is forbidden.
func denialError(identity auth.Identity, d auth.Decision) error {
	if d.Reason == auth.ReasonNotAuthenticated {
		if identity.State == auth.StateRejected && identity.Reason != nil {
			return fmt.Errorf("%w: %v", domain.ErrUnauthenticated, identity.Reason)
		}
		return domain.ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
}

func validateLocation(loc domain.Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", domain.ErrInvalidInput)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", domain.ErrInvalidInput)
	}
	return nil
}
