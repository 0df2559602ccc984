package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/paywatch/internal/config"
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKey        = "compliance:summary"
	defaultSummaryTTL = time.Minute
)

// SummaryCache caches the headline compliance summary so repeated
// dashboard reads do not recompute it over the full record set.
type SummaryCache interface {
	Get(ctx context.Context) (*domain.ComplianceSummary, bool, error)
	Set(ctx context.Context, summary *domain.ComplianceSummary) error
	Invalidate(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

// NewSummaryCache returns a redis-backed cache when caching is enabled and
// reachable, otherwise an error; use NewNoopSummaryCache for the disabled
// path.
func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SummaryTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context) (*domain.ComplianceSummary, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.ComplianceSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode compliance summary cache: %w", err)
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, summary *domain.ComplianceSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode compliance summary cache: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, summaryKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *noopSummaryCache) Get(ctx context.Context) (*domain.ComplianceSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) Set(ctx context.Context, summary *domain.ComplianceSummary) error {
	return nil
}

func (n *noopSummaryCache) Invalidate(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
