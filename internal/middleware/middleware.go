package middleware

import (
	"context"
	"time"

	"github.com/mbahwiryo/storefront/internal/config"
	"github.com/mbahwiryo/storefront/internal/logger"
)

// RateCounter counts requests in fixed windows. *database.Redis implements it.
type RateCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Middleware holds all HTTP middleware
type Middleware struct {
	counter RateCounter
	log     *logger.Logger
	cfg     *config.Config
}

// New creates a new Middleware instance. counter may be nil, in which case
// rate limiting is skipped.
func New(counter RateCounter, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		counter: counter,
		log:     log,
		cfg:     cfg,
	}
}
