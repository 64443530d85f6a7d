package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/herbal-storefront/internal/config"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
)

type Connection struct {
	client *redis.Client
}

func NewConnection(ctx context.Context, cfg config.RedisConfig) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	monitoring.InstrumentRedisClient(client)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Connection{
		client: client,
	}, nil
}

func NewConnectionFromClient(client *redis.Client) *Connection {
	return &Connection{client: client}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Connection) Close() error {
	return c.client.Close()
}

func (c *Connection) GetClient() *redis.Client {
	return c.client
}
