package model

import (
	"time"
)

// Resolved sentinel spellings. The category column doubles as the
// resolution flag; two spellings of the sentinel exist in production
// data and both must be treated as resolved. New resolutions always
// write ResolvedSentinel.
const (
	ResolvedSentinel       = "Разрешен сигнал"
	ResolvedSentinelLegacy = "Разрешен"
)

// Sofia bounding box, matching the submission form's viewbox.
const (
	SofiaMinLat = 42.63
	SofiaMaxLat = 42.75
	SofiaMinLng = 23.20
	SofiaMaxLng = 23.45
)

// Report is a single citizen-submitted accessibility-obstacle record.
type Report struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Sent        bool      `json:"sent"`
	IsVisible   bool      `json:"is_visible"`
}

// IsResolvedType reports whether a category value is one of the
// resolved sentinels.
func IsResolvedType(reportType string) bool {
	return reportType == ResolvedSentinel || reportType == ResolvedSentinelLegacy
}

// Resolved reports whether the report's category marks it resolved.
func (r Report) Resolved() bool {
	return IsResolvedType(r.Type)
}

// InSofia reports whether the coordinates fall inside the city
// bounding box the product accepts submissions for.
func InSofia(lat, lng float64) bool {
	return lat >= SofiaMinLat && lat <= SofiaMaxLat && lng >= SofiaMinLng && lng <= SofiaMaxLng
}

// ReportSnapshot is the prior state read before a mutation, used to
// decide counter deltas.
type ReportSnapshot struct {
	ID        int64
	Type      string
	IsVisible bool
	ImageURL  *string
}

// Resolved reports whether the snapshot was already resolved.
func (s ReportSnapshot) Resolved() bool {
	return IsResolvedType(s.Type)
}

// CreateReportRequest carries the submission form fields. The photo
// travels separately as a multipart file part.
type CreateReportRequest struct {
	Title       string  `json:"address" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Lat         float64 `json:"lat" validate:"latitude"`
	Lng         float64 `json:"lng" validate:"longitude"`
}

// ResolveReportsRequest is the bulk-resolve body.
type ResolveReportsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// PatchReportRequest toggles the sent and visibility flags. Nil fields
// are left untouched.
type PatchReportRequest struct {
	ID        int64 `json:"id"`
	Sent      *bool `json:"sent,omitempty"`
	IsVisible *bool `json:"is_visible,omitempty"`
}

// Counters is the singleton aggregate record: total counts currently
// visible reports, resolved counts visible reports whose category is a
// resolved sentinel. Both are maintained imperatively by the mutation
// paths, never recomputed from the reports table.
type Counters struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
}
