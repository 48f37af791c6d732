package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/validation"
)

const DefaultBaseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

// Client resolves coordinates to a location through a BigDataCloud style
// reverse-geocoding endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type response struct {
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Locality    string `json:"locality"`
}

// Lookup returns the location at (lat, lng). Empty parts of the upstream
// answer are nil. Network failures, non-200 statuses and malformed bodies
// are errors.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (*model.Location, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reverse geocoding returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data response
	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &model.Location{
		Country:     validation.NormalizeOptional(&data.CountryName),
		CountryCode: validation.NormalizeOptional(&data.CountryCode),
		City:        validation.NormalizeOptional(&data.City),
		Locality:    validation.NormalizeOptional(&data.Locality),
	}, nil
}

// Country is the best-effort form of Lookup: any failure is logged and
// reported as an unknown country.
func (c *Client) Country(ctx context.Context, lat, lng float64) *string {
	loc, err := c.Lookup(ctx, lat, lng)
	if err != nil {
		slog.Warn("reverse geocoding failed", "error", err, "lat", lat, "lng", lng)
		return nil
	}
	return loc.Country
}
