package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roadwatch/roadwatch-api/internal/core/auth"
	"github.com/roadwatch/roadwatch-api/internal/core/domain"
	"github.com/roadwatch/roadwatch-api/internal/core/ports"
)

type stubReportService struct {
	listFn   func(ctx context.Context, identity auth.Identity) ([]*domain.Report, error)
	getFn    func(ctx context.Context, id string) (*domain.Report, error)
	createFn func(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error)
	updateFn func(ctx context.Context, input ports.UpdateStatusInput) (*domain.Report, error)
	deleteFn func(ctx context.Context, input ports.DeleteReportInput) (*ports.DeleteResult, error)
}

func (s *stubReportService) List(ctx context.Context, identity auth.Identity) ([]*domain.Report, error) {
	return s.listFn(ctx, identity)
}

func (s *stubReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.getFn(ctx, id)
}

func (s *stubReportService) Create(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
	return s.createFn(ctx, input)
}

func (s *stubReportService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Report, error) {
	return s.updateFn(ctx, input)
}

func (s *stubReportService) Delete(ctx context.Context, input ports.DeleteReportInput) (*ports.DeleteResult, error) {
	return s.deleteFn(ctx, input)
}

func newReportContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setIdentity(c echo.Context, id auth.Identity) {
	c.Set("identity", id)
}

func userIdentity(id string) auth.Identity {
	return auth.Identity{
		State:     auth.StateAuthenticated,
		Principal: &auth.Principal{ID: id, Email: id + "@example.com", Role: domain.RoleUser},
	}
}

func TestReportHandler_List(t *testing.T) {
	stub := &stubReportService{
		listFn: func(ctx context.Context, identity auth.Identity) ([]*domain.Report, error) {
			if identity.State != auth.StateAnonymous {
				t.Fatalf("expected anonymous identity, got %v", identity.State)
			}
			return []*domain.Report{{ID: "rep_2"}, {ID: "rep_1"}}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newReportContext(t, http.MethodGet, "/api/reports", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "rep_2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReportHandler_Get_NotFound(t *testing.T) {
	stub := &stubReportService{
		getFn: func(ctx context.Context, id string) (*domain.Report, error) {
			return nil, domain.ErrReportNotFound
		},
	}
	h := NewReportHandler(stub)

	c, _ := newReportContext(t, http.MethodGet, "/api/reports/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Get(c); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound to propagate, got %v", err)
	}
}

func TestReportHandler_Create_Success(t *testing.T) {
	stub := &stubReportService{
		createFn: func(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
			if input.Description != "pothole on Main St" {
				t.Fatalf("unexpected description: %q", input.Description)
			}
			if input.Location == nil || input.Location.Latitude != 28.6 || input.Location.Longitude != 77.2 {
				t.Fatalf("unexpected location: %+v", input.Location)
			}
			if !input.Identity.Authenticated() {
				t.Fatalf("identity not forwarded")
			}
			author := input.Identity.Principal.ID
			return &domain.Report{
				ID:          "rep_1",
				Description: input.Description,
				Location:    *input.Location,
				Status:      domain.StatusReported,
				AuthorID:    &author,
			}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newReportContext(t, http.MethodPost, "/api/reports",
		`{"description":"pothole on Main St","location":{"latitude":28.6,"longitude":77.2}}`)
	setIdentity(c, userIdentity("acc_1"))

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "Reported" || resp["authorId"] != "acc_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReportHandler_Create_MissingLocationStaysNil(t *testing.T) {
	stub := &stubReportService{
		createFn: func(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
			if input.Location != nil {
				t.Fatalf("omitted location must map to nil, got %+v", input.Location)
			}
			return nil, domain.ErrInvalidInput
		},
	}
	h := NewReportHandler(stub)

	c, _ := newReportContext(t, http.MethodPost, "/api/reports", `{"description":"pothole"}`)
	setIdentity(c, userIdentity("acc_1"))

	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput to propagate, got %v", err)
	}
}

func TestReportHandler_Create_Unauthenticated(t *testing.T) {
	stub := &stubReportService{
		createFn: func(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
			if input.Identity.State != auth.StateAnonymous {
				t.Fatalf("expected anonymous identity forwarded")
			}
			return nil, domain.ErrUnauthenticated
		},
	}
	h := NewReportHandler(stub)

	c, _ := newReportContext(t, http.MethodPost, "/api/reports",
		`{"description":"pothole","location":{"latitude":1,"longitude":2}}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated to propagate, got %v", err)
	}
}

func TestReportHandler_UpdateStatus(t *testing.T) {
	stub := &stubReportService{
		updateFn: func(ctx context.Context, input ports.UpdateStatusInput) (*domain.Report, error) {
			if input.ReportID != "rep_1" || input.Status != domain.StatusResolved {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Report{ID: "rep_1", Status: domain.StatusResolved}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newReportContext(t, http.MethodPatch, "/api/reports/rep_1/status", `{"status":"Resolved"}`)
	c.SetParamNames("id")
	c.SetParamValues("rep_1")
	setIdentity(c, auth.Identity{
		State:     auth.StateAuthenticated,
		Principal: &auth.Principal{ID: "acc_2", Role: domain.RoleAdmin},
	})

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_Delete(t *testing.T) {
	stub := &stubReportService{
		deleteFn: func(ctx context.Context, input ports.DeleteReportInput) (*ports.DeleteResult, error) {
			if input.ReportID != "rep_1" {
				t.Fatalf("unexpected id: %s", input.ReportID)
			}
			return &ports.DeleteResult{ID: "rep_1"}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newReportContext(t, http.MethodDelete, "/api/reports/rep_1", "")
	c.SetParamNames("id")
	c.SetParamValues("rep_1")
	setIdentity(c, userIdentity("acc_1"))

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "rep_1" {
		t.Fatalf("confirmation must reference the id, got %+v", resp)
	}
}

func TestReportHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubReportService{
		deleteFn: func(ctx context.Context, input ports.DeleteReportInput) (*ports.DeleteResult, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewReportHandler(stub)

	c, _ := newReportContext(t, http.MethodDelete, "/api/reports/rep_1", "")
	c.SetParamNames("id")
	c.SetParamValues("rep_1")
	setIdentity(c, userIdentity("acc_9"))

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}
