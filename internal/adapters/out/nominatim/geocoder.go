// Package nominatim resolves addresses through a Nominatim compatible
// search endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
)

// DefaultTimeout bounds one search request.
const DefaultTimeout = 5 * time.Second

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocoder implements ports.Geocoder. Nominatim's usage policy requires an
// identifying User-Agent on every request.
type Geocoder struct {
	baseURL      string
	userAgent    string
	countryCodes string
	client       *http.Client
}

// NewGeocoder creates a geocoder for the Nominatim instance at baseURL.
// countryCodes narrows the search when set; a nil client gets DefaultTimeout.
func NewGeocoder(baseURL, userAgent, countryCodes string, client *http.Client) (*Geocoder, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("geocoder url", err)
	}
	if strings.TrimSpace(userAgent) == "" {
		return nil, errs.NewValueIsRequiredError("geocoder user agent")
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &Geocoder{
		baseURL:      strings.TrimRight(baseURL, "/"),
		userAgent:    userAgent,
		countryCodes: countryCodes,
		client:       client,
	}, nil
}

// Geocode returns the position of the best match for query, or an
// errs.ObjectNotFoundError when the service finds nothing.
func (g *Geocoder) Geocode(ctx context.Context, query string) (kernel.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	if g.countryCodes != "" {
		params.Set("countrycodes", g.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return kernel.Coordinates{}, err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return kernel.Coordinates{}, fmt.Errorf("geocode %q: unexpected status %d: %s",
			query, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", query, err)
	}
	if len(places) == 0 {
		return kernel.Coordinates{}, errs.NewObjectNotFoundError("address", query)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return kernel.Coordinates{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return kernel.Coordinates{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}
	return kernel.NewCoordinates(lat, lon)
}
