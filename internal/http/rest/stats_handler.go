package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
	"github.com/tgarmenliev/sofaccess-api/util/values"
)

func (api *API) StatsRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.GetStats))
	return mux
}

// GetStats returns the aggregate counters shown on the landing page.
func (api *API) GetStats(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	counters, err := api.GetCountersRepo(r.Context())
	if err != nil {
		return respondWithError(err, "Failed to fetch stats", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Stats fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       counters,
	}
}
