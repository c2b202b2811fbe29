package collector

import (
	"fmt"

	"github.com/qepting91/hotfavs/internal/config"
	"github.com/qepting91/hotfavs/internal/domain"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(cfg config.Config) (domain.Gateway, error) {
	switch cfg.CollectorMode {
	case "api":
		return NewAPIClient(
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Username,
			cfg.Password,
			cfg.UserAgent,
			cfg.MinInterval,
		)
	case "public", "":
		return NewPublicClient(cfg.BaseURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.MinInterval)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
