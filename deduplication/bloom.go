package deduplication

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"newscast/config"
)

// LinkFilter is a fast, probabilistic "have we stored this link" check used by the
// collector before it asks the document store.
type LinkFilter interface {
	Seen(ctx context.Context, link string) (bool, error)
	Mark(ctx context.Context, link string) error
	Close() error
}

// RedisBloom is a minimal Redis-backed Bloom wrapper using RedisBloom commands
type RedisBloom struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewLinkFilter returns a RedisBloom filter when REDIS_ADDR is configured, and a
// no-op filter otherwise (or when Redis is unreachable).
func NewLinkFilter(cfg *config.RedisConfig, log zerolog.Logger) LinkFilter {
	if cfg.Addr == "" {
		log.Warn().Msg("⚠️  REDIS_ADDR not set; link bloom filter disabled")
		return NopFilter{}
	}
	rb, err := NewRedisBloom(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis unavailable; link bloom filter disabled")
		return NopFilter{}
	}
	log.Info().Str("addr", cfg.Addr).Str("key", cfg.BloomKey).Msg("✅ Link bloom filter ready")
	return rb
}

// NewRedisBloom creates a RedisBloom wrapper and verifies connectivity
func NewRedisBloom(cfg config.RedisConfig) (*RedisBloom, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	// BF.RESERVE only when the key is new. A failure here is tolerated because
	// BF.ADD auto-creates the filter with module defaults.
	exists, err := client.Exists(ctx, cfg.BloomKey).Result()
	if err == nil && exists == 0 {
		args := []interface{}{"BF.RESERVE", cfg.BloomKey, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity}
		if cfg.NonScaling {
			args = append(args, "NONSCALING")
		}
		_ = client.Do(ctx, args...).Err()
	}

	return &RedisBloom{client: client, key: cfg.BloomKey, ttl: cfg.BloomTTL}, nil
}

// Close closes the underlying Redis client
func (r *RedisBloom) Close() error {
	return r.client.Close()
}

// Seen reports whether the normalized link may already be stored (BF.EXISTS).
func (r *RedisBloom) Seen(ctx context.Context, link string) (bool, error) {
	res, err := r.client.Do(ctx, "BF.EXISTS", r.key, HashLink(link)).Result()
	if err != nil {
		return false, err
	}
	return parseBloomReply(res)
}

// Mark records the normalized link (BF.ADD) and slides the key TTL forward.
func (r *RedisBloom) Mark(ctx context.Context, link string) error {
	if err := r.client.Do(ctx, "BF.ADD", r.key, HashLink(link)).Err(); err != nil {
		return err
	}
	if r.ttl > 0 {
		return r.client.Expire(ctx, r.key, r.ttl).Err()
	}
	return nil
}

func parseBloomReply(res interface{}) (bool, error) {
	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case bool:
		return v, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// NopFilter never reports a hit, so every candidate goes to the store.
type NopFilter struct{}

func (NopFilter) Seen(context.Context, string) (bool, error) { return false, nil }
func (NopFilter) Mark(context.Context, string) error         { return nil }
func (NopFilter) Close() error                               { return nil }

// HashLink returns the SHA-256 hex of the normalized link.
func HashLink(link string) string {
	h := sha256.Sum256([]byte(NormalizeLink(link)))
	return hex.EncodeToString(h[:])
}

// NormalizeLink lowercases scheme and host, drops the fragment, strips tracking
// parameters (utm_*, fbclid, gclid) and trims a trailing slash.
func NormalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
