package distance

import (
	"context"
	"errors"
	"fmt"
	"genetic-route-service/internal/adapters/cache"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
	"genetic-route-service/internal/ports"
	"log"
	"net/http"
	"time"
)

// Free-tier ORS limit on sources × destinations per matrix request.
const maxRoutesPerRequest = 3500

// ORSMatrixProvider implements DistanceMatrixProvider using OpenRouteService.
//
// It coordinates:
//   - Persistent distance caching keyed by rounded coordinates
//   - Batched matrix requests for the rows missing from the cache
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	backoff time.Duration
	cache   ports.DistanceCache
}

type ORSOption func(*ORSMatrixProvider)

// Point the provider at another ORS deployment.
func WithBaseURL(url string) ORSOption {
	return func(o *ORSMatrixProvider) { o.baseURL = url }
}

// Override the routing profile, e.g. "cycling-regular".
func WithProfile(profile string) ORSOption {
	return func(o *ORSMatrixProvider) { o.profile = profile }
}

// Set the initial retry backoff.
func WithBackoff(d time.Duration) ORSOption {
	return func(o *ORSMatrixProvider) { o.backoff = d }
}

// cache may be nil to disable persistent caching.
func NewORSMatrixProvider(apiKey string, c ports.DistanceCache, opts ...ORSOption) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSMatrixProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		backoff: initialBackoff,
		cache:   c,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// Delegate to the matrix path to reuse caching.
func (o *ORSMatrixProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	m, err := o.GetMatrix(ctx, []domain.Coordinates{origin, destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get ORS distance: %w", err)
	}
	return m[0][1], nil
}

// Compute the full distance matrix between locations. Rows found complete in
// the cache are not requested again.
func (o *ORSMatrixProvider) GetMatrix(
	ctx context.Context,
	locations []domain.Coordinates,
) (_ [][]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetMatrix")(&err)

	n := len(locations)
	keys := make([]string, n)
	for i, c := range locations {
		keys[i] = cache.LocationKey(c)
	}

	out := make([][]ports.DistanceResult, n)
	missing := make([]int, 0, n)
	for i := range locations {
		out[i] = make([]ports.DistanceResult, n)

		complete, err := o.fillFromCache(ctx, keys, i, out[i])
		if err != nil {
			return nil, fmt.Errorf("ORS get distance cache: %w", err)
		}
		if !complete {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	// Keep each request under the per-request route limit.
	chunk := max(1, maxRoutesPerRequest/max(1, n))
	for start := 0; start < len(missing); start += chunk {
		sources := missing[start:min(start+chunk, len(missing))]

		rows, err := o.fetchMatrixRows(ctx, locations, sources)
		if err != nil {
			return nil, fmt.Errorf("fetching matrix rows: %w", err)
		}

		for k, i := range sources {
			out[i] = rows[k]
			o.storeRow(ctx, keys, i, rows[k])
		}
	}

	return out, nil
}

// fillFromCache copies cached results for origin i into row and reports
// whether every other distinct location was found.
func (o *ORSMatrixProvider) fillFromCache(ctx context.Context, keys []string, i int, row []ports.DistanceResult) (bool, error) {
	if o.cache == nil {
		return len(keys) <= 1, nil
	}

	hits, err := o.cache.GetMany(ctx, keys[i], keys)
	if err != nil {
		return false, err
	}

	complete := true
	for j, k := range keys {
		if k == keys[i] {
			continue
		}
		r, ok := hits[k]
		if !ok {
			complete = false
			continue
		}
		row[j] = r
	}
	return complete, nil
}

func (o *ORSMatrixProvider) storeRow(ctx context.Context, keys []string, i int, row []ports.DistanceResult) {
	if o.cache == nil {
		return
	}

	results := make(map[string]ports.DistanceResult, len(keys))
	for j, k := range keys {
		if k != keys[i] {
			results[k] = row[j]
		}
	}
	if err := o.cache.PutMany(ctx, keys[i], results); err != nil {
		log.Printf("distance cache write failed: %v", err)
	}
}
