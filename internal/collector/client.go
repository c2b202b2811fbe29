package collector

import (
	"time"

	"github.com/qepting91/hotfavs/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultLimit is the number of hot posts a search asks for.
const DefaultLimit = 10

// newLimiter returns a token bucket spacing requests by interval.
// A zero interval leaves the client unthrottled.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Compile-time checks that every client satisfies the gateway.
var (
	_ domain.Gateway = (*PublicClient)(nil)
	_ domain.Gateway = (*APIClient)(nil)
	_ domain.Gateway = (*MockClient)(nil)
)
