package domain

import "time"

// ReportStatus represents the triage state of a road-damage report.
type ReportStatus string

const (
	StatusReported   ReportStatus = "Reported"
	StatusInProgress ReportStatus = "In Progress"
	StatusResolved   ReportStatus = "Resolved"
	StatusRejected   ReportStatus = "Rejected"
)

// Valid reports whether s is one of the known report statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusReported, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Location is a geographic point captured by the reporter's browser.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Report is the core aggregate: a single geotagged road-damage report.
//
// AuthorID is nil for legacy reports created before ownership tracking
// existed; such reports are only ever deletable by an administrator.
type Report struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Location    Location     `json:"location"`
	Status      ReportStatus `json:"status"`
	UserName    string       `json:"userName"`
	AuthorID    *string      `json:"authorId,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
