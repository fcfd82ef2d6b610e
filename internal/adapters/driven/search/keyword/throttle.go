package keyword

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// Throttle defaults. Extraction fallback queries arrive in bursts; the
// limiter smooths them so a large corpus scan cannot starve the CLI.
const (
	DefaultQueriesPerSecond = 10
	DefaultBurst            = 5
	DefaultQueryTimeout     = 3 * time.Second
)

// Ensure Throttled implements the interface.
var _ driven.SearchEngine = (*Throttled)(nil)

// Throttled decorates a search engine with rate limiting and a per-query
// timeout.
type Throttled struct {
	inner   driven.SearchEngine
	limiter *rate.Limiter
	timeout time.Duration
}

// ThrottleOption configures a Throttled engine.
type ThrottleOption func(*Throttled)

// WithRate sets queries per second and burst size.
func WithRate(qps float64, burst int) ThrottleOption {
	return func(t *Throttled) {
		t.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

// WithQueryTimeout sets the per-query deadline.
func WithQueryTimeout(d time.Duration) ThrottleOption {
	return func(t *Throttled) {
		t.timeout = d
	}
}

// NewThrottled wraps an engine with the default limits.
func NewThrottled(inner driven.SearchEngine, opts ...ThrottleOption) *Throttled {
	t := &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(DefaultQueriesPerSecond), DefaultBurst),
		timeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Search waits for limiter headroom, then runs the query under the
// configured deadline. A context already past its deadline returns
// immediately with that error.
func (t *Throttled) Search(ctx context.Context, query string, filters domain.SearchFilters, mode domain.SearchMode, limit int) ([]domain.SearchHit, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Search(ctx, query, filters, mode, limit)
}
