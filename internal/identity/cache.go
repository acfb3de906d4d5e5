package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barberbook/booking-api/internal/config"
)

const verifyTTL = 60 * time.Second

// CachedVerifier memoizes successful token verifications in redis so a busy
// client does not hit the identity provider once per request. Failures are
// never cached. A nil redis client degrades to direct verification.
type CachedVerifier struct {
	next Verifier
	rdb  *redis.Client
}

func NewCachedVerifier(next Verifier, rdb *redis.Client) *CachedVerifier {
	return &CachedVerifier{next: next, rdb: rdb}
}

// NewRedisClient builds a client from config, or nil when no address is set
// or the server is unreachable. Callers treat nil as "cache disabled".
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	dbNum, _ := strconv.Atoi(cfg.RedisDB)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

func (v *CachedVerifier) Verify(ctx context.Context, accessToken string) (*Principal, error) {
	if v.rdb == nil {
		return v.next.Verify(ctx, accessToken)
	}

	key := cacheKey(accessToken)

	if raw, err := v.rdb.Get(ctx, key).Bytes(); err == nil {
		var p Principal
		if json.Unmarshal(raw, &p) == nil {
			return &p, nil
		}
	}

	principal, err := v.next.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(principal); err == nil {
		v.rdb.Set(ctx, key, raw, verifyTTL)
	}

	return principal, nil
}

func cacheKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "idp:verify:" + hex.EncodeToString(sum[:])
}

var _ Verifier = (*CachedVerifier)(nil)
