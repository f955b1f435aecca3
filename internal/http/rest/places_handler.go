package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/http/nominatim"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
	"github.com/tgarmenliev/sofaccess-api/util/values"
)

// PlacesRoutes exposes the Geocoding Adapter to the submission form:
// address autocomplete and current-location reverse lookup.
func (api *API) PlacesRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/search", Handler(api.SearchPlacesHandler))
	mux.Method(http.MethodGet, "/reverse", Handler(api.ReverseGeocodeHandler))
	return mux
}

// Suggestion is one autocomplete entry: the compact label shown in the
// dropdown plus the coordinates filled into the form on selection.
type Suggestion struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (api *API) SearchPlacesHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if len(text) < 3 {
		return respondWithError(nil, "'text' must be at least 3 characters", values.BadRequestBody, &tc)
	}

	// search stays bounded to the city the product serves
	viewbox := fmt.Sprintf("%.2f,%.2f,%.2f,%.2f",
		model.SofiaMinLng, model.SofiaMinLat, model.SofiaMaxLng, model.SofiaMaxLat)

	places, err := api.Deps.Nominatim.Search(r.Context(), &nominatim.SearchQuery{
		Query:          text,
		AddressDetails: 1,
		Limit:          5,
		Bounded:        1,
		Viewbox:        viewbox,
	})
	if err != nil {
		return respondWithError(err, "Failed to search addresses", values.Error, &tc)
	}

	suggestions := make([]Suggestion, 0, len(places))
	for _, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lng, lngErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		suggestions = append(suggestions, Suggestion{Label: place.Label(), Lat: lat, Lng: lng})
	}

	return &ServerResponse{
		Message:    "Addresses fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       suggestions,
	}
}

func (api *API) ReverseGeocodeHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return respondWithError(err, "invalid lat", values.BadRequestBody, &tc)
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return respondWithError(err, "invalid lng", values.BadRequestBody, &tc)
	}

	place, err := api.Deps.Nominatim.Reverse(r.Context(), &nominatim.ReverseQuery{
		Lat:            lat,
		Lon:            lng,
		AddressDetails: 1,
	})
	if err != nil {
		return respondWithError(err, "Failed to resolve location", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Location resolved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       Suggestion{Label: place.Label(), Lat: lat, Lng: lng},
	}
}
