package dem

import (
	"context"
	"fmt"
	"time"

	resty "resty.dev/v3"
)

// DefaultAPIBatchSize caps how many coordinates go into one lookup
// request.
const DefaultAPIBatchSize = 512

// APIClient samples elevations from a remote point-lookup service
// speaking the Open-Elevation wire format: POST /api/v1/lookup with a
// list of locations, JSON response with per-location elevations.
type APIClient struct {
	client *resty.Client
	batch  int
}

// APIOption configures an APIClient.
type APIOption func(*APIClient)

// WithBatchSize sets the per-request coordinate cap.
func WithBatchSize(n int) APIOption {
	return func(c *APIClient) { c.batch = n }
}

// WithTimeout sets the per-request timeout. Default is 30 seconds.
func WithTimeout(d time.Duration) APIOption {
	return func(c *APIClient) { c.client.SetTimeout(d) }
}

// NewAPIClient creates a client for the elevation service at baseURL.
func NewAPIClient(baseURL string, opts ...APIOption) *APIClient {
	c := &APIClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		batch:  DefaultAPIBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying HTTP client.
func (c *APIClient) Close() error {
	return c.client.Close()
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupResult struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

type lookupResponse struct {
	Results []lookupResult `json:"results"`
}

// Elevations implements Sampler. Lookups go out in batches; a null
// elevation in the response becomes DefaultNoData. There is no retry:
// the first failed request fails the whole sample pass.
func (c *APIClient) Elevations(ctx context.Context, coords [][2]float64) ([]float64, error) {
	out := make([]float64, 0, len(coords))
	for start := 0; start < len(coords); start += c.batch {
		end := start + c.batch
		if end > len(coords) {
			end = len(coords)
		}
		batch, err := c.lookup(ctx, coords[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (c *APIClient) lookup(ctx context.Context, coords [][2]float64) ([]float64, error) {
	req := lookupRequest{Locations: make([]lookupLocation, len(coords))}
	for i, p := range coords {
		req.Locations[i] = lookupLocation{Latitude: p[1], Longitude: p[0]}
	}

	var body lookupResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post("/api/v1/lookup")
	if err != nil {
		return nil, fmt.Errorf("dem: elevation lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dem: elevation lookup: %s", resp.Status())
	}
	if len(body.Results) != len(coords) {
		return nil, fmt.Errorf("dem: elevation lookup returned %d results for %d locations", len(body.Results), len(coords))
	}

	out := make([]float64, len(body.Results))
	for i, r := range body.Results {
		if r.Elevation == nil {
			out[i] = DefaultNoData
			continue
		}
		out[i] = *r.Elevation
	}
	return out, nil
}
