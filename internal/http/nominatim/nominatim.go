// Package nominatim wraps the OSM Nominatim geocoding API for the
// submission form: forward search bounded to the Sofia viewbox and
// reverse lookup for the current-location button.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "sof-access/1.0"
)

// Client handles communication with the Nominatim API.
type Client struct {
	BaseURL    *url.URL
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new Nominatim client with default timeout.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, _ := url.Parse(baseURL)
	return &Client{
		BaseURL:   parsed,
		UserAgent: defaultUserAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// SearchQuery represents parameters for forward geocoding requests.
type SearchQuery struct {
	Query          string `url:"q"`
	Format         string `url:"format"`
	AddressDetails int    `url:"addressdetails"`
	Limit          int    `url:"limit"`
	Bounded        int    `url:"bounded,omitempty"`
	Viewbox        string `url:"viewbox,omitempty"` // minLng,minLat,maxLng,maxLat
}

// ReverseQuery represents parameters for reverse geocoding requests.
type ReverseQuery struct {
	Lat            float64 `url:"lat"`
	Lon            float64 `url:"lon"`
	Format         string  `url:"format"`
	AddressDetails int     `url:"addressdetails"`
}

// Address is the structured address block on a Nominatim result.
type Address struct {
	Road        string `json:"road"`
	HouseNumber string `json:"house_number"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
}

// Place is a single geocoding result.
type Place struct {
	PlaceID     int64    `json:"place_id"`
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Address     *Address `json:"address,omitempty"`
}

// Label builds the compact address label shown in the form's
// suggestion list: road, house number, suburb, and the city when the
// result is in Sofia.
func (p Place) Label() string {
	if p.Address != nil {
		var parts []string
		if p.Address.Road != "" {
			parts = append(parts, p.Address.Road)
		}
		if p.Address.HouseNumber != "" {
			parts = append(parts, p.Address.HouseNumber)
		}
		if p.Address.Suburb != "" {
			parts = append(parts, p.Address.Suburb)
		}
		if p.Address.City == "Sofia" || p.Address.City == "София" {
			parts = append(parts, "София")
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	segments := strings.Split(p.DisplayName, ",")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return strings.Join(segments, ", ")
}

// Search runs a forward geocoding query.
func (c *Client) Search(ctx context.Context, params *SearchQuery) ([]Place, error) {
	if params.Format == "" {
		params.Format = "json"
	}

	var places []Place
	if err := c.doRequest(ctx, "/search", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Reverse resolves coordinates to the nearest address.
func (c *Client) Reverse(ctx context.Context, params *ReverseQuery) (*Place, error) {
	if params.Format == "" {
		params.Format = "json"
	}

	var place Place
	if err := c.doRequest(ctx, "/reverse", params, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) doRequest(ctx context.Context, path string, params interface{}, target interface{}) error {
	values, err := query.Values(params)
	if err != nil {
		return errors.Wrap(err, "failed to encode query parameters")
	}

	endpoint := *c.BaseURL
	endpoint.Path += path
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	// Nominatim's usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Language", "bg")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
