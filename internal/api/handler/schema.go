package handler

import "github.com/roadwatch/roadwatch-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"    validate:"required"`
	Password  string `json:"password" validate:"required"`
	AdminCode string `json:"adminCode"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  *domain.Account `json:"user"`
}

// --- Reports ---

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// createReportRequest deliberately carries no validate tags: the service
// checks authorization before validation, so a caller without a valid
// credential sees 401 rather than a validation error. Location is a
// pointer so a missing coordinate pair is distinguishable from (0, 0).
type createReportRequest struct {
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	Location    *locationRequest `json:"location"`
	UserName    string           `json:"userName"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type deleteReportResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
