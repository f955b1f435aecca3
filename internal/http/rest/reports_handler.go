package rest

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
	"github.com/tgarmenliev/sofaccess-api/util/values"
)

// maxUploadBytes caps the multipart body before normalization; the
// normalizer enforces its own ceiling on the stored result.
const maxUploadBytes = 20 << 20

func (api *API) ReportRoutes() chi.Router {
	mux := chi.NewRouter()

	// public surface: submissions come in, approved reports go out
	mux.Method(http.MethodPost, "/", Handler(api.CreateReport))
	mux.Method(http.MethodGet, "/", Handler(api.ListReports))

	// moderation surface
	mux.Group(func(r chi.Router) {
		r.Use(api.RequireAdmin)
		r.Method(http.MethodPut, "/", Handler(api.ResolveReports))
		r.Method(http.MethodPatch, "/", Handler(api.PatchReport))
		r.Method(http.MethodDelete, "/", Handler(api.DeleteReport))
	})

	return mux
}

// CreateReport accepts the submission form: address, description,
// type, coordinates, optional photo.
func (api *API) CreateReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return respondWithError(err, "unable to parse form", values.BadRequestBody, &tc)
	}

	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.FormValue("lng"), 64)
	if latErr != nil || lngErr != nil {
		return respondWithError(nil, "lat and lng must be numbers", values.BadRequestBody, &tc)
	}

	req := model.CreateReportRequest{
		Title:       r.FormValue("address"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Lat:         lat,
		Lng:         lng,
	}

	var photo []byte
	var photoName string
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		photoName = header.Filename
		photo, err = io.ReadAll(file)
		if err != nil {
			return respondWithError(err, "unable to read photo upload", values.BadRequestBody, &tc)
		}
	}

	status, message, err := api.CreateReportHelper(r.Context(), req, photo, photoName)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// ListReports returns approved reports, or all reports when an
// authenticated administrator passes admin=true. The token is checked
// here rather than trusting the query flag.
func (api *API) ListReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	admin := r.URL.Query().Get("admin") == "true"
	if admin {
		if _, err := api.adminClaimsFromRequest(r); err != nil {
			return respondWithError(err, "admin listing requires authentication", values.NotAuthorised, &tc)
		}
	}

	reports, status, message, err := api.ListReportsHelper(r.Context(), admin)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if reports == nil {
		reports = []model.Report{}
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
	}
}

// ResolveReports marks a set of reports resolved in one shot.
func (api *API) ResolveReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.ResolveReportsRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if len(req.IDs) == 0 {
		return respondWithError(nil, "ids must be a non-empty list", values.BadRequestBody, &tc)
	}

	admin, err := util.GetAdminFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get admin from context", values.NotAuthorised, &tc)
	}
	log.Printf("admin %s resolving reports %v", admin, req.IDs)

	status, message, err := api.ResolveReportsHelper(r.Context(), req.IDs)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// PatchReport toggles the sent and visibility flags on one report.
func (api *API) PatchReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.PatchReportRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if req.ID == 0 {
		return respondWithError(nil, "id is required", values.BadRequestBody, &tc)
	}
	if req.Sent == nil && req.IsVisible == nil {
		return respondWithError(nil, "nothing to update", values.BadRequestBody, &tc)
	}

	status, message, err := api.PatchReportHelper(r.Context(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// DeleteReport removes a report row and its photo.
func (api *API) DeleteReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		return respondWithError(nil, "id is required", values.BadRequestBody, &tc)
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return respondWithError(err, "invalid id format", values.BadRequestBody, &tc)
	}

	admin, err := util.GetAdminFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get admin from context", values.NotAuthorised, &tc)
	}
	log.Printf("admin %s deleting report %d", admin, id)

	status, message, err := api.DeleteReportHelper(r.Context(), id)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
