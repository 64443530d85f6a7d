package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// SubmitGuard holds a short-lived SETNX key per submission so repeated
// clicks on any instance are rejected until the window passes.
type SubmitGuard struct {
	client *redis.Client
	log    *logger.Logger
}

func NewSubmitGuard(conn *Connection, log *logger.Logger) *SubmitGuard {
	return &SubmitGuard{
		client: conn.GetClient(),
		log:    log,
	}
}

func guardKey(key string) string {
	return fmt.Sprintf("guard:%s", key)
}

func (g *SubmitGuard) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	metrics := monitoring.NewSubmitGuardMetrics(key)
	metrics.RecordAttempt()

	ok, err := g.client.SetNX(ctx, guardKey(key), "1", window).Result()
	if err != nil {
		metrics.RecordFailure("error")
		return false, err
	}
	if !ok {
		metrics.RecordFailure("held")
		return false, nil
	}

	metrics.RecordSuccess()
	return true, nil
}

func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, guardKey(key)).Err()
}
