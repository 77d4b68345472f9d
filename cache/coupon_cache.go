package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/storelane/storefront-api/models"
)

// CouponCache is a read-through cache in front of coupon lookups on the
// validate endpoint. The checkout transaction never consults it — usage
// accounting always reads the locked database row.
type CouponCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a cache over the given redis address, or nil when addr is
// empty (caching disabled).
func New(addr string) *CouponCache {
	if addr == "" {
		return nil
	}
	return &CouponCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    5 * time.Minute,
	}
}

func key(code string) string {
	return "coupon:" + strings.ToLower(code)
}

// Get returns the cached coupon for a code, or nil on miss or any redis
// error. Callers fall back to the database.
func (cc *CouponCache) Get(ctx context.Context, code string) *models.Coupon {
	if cc == nil {
		return nil
	}
	raw, err := cc.client.Get(ctx, key(code)).Bytes()
	if err != nil {
		return nil
	}
	var coupon models.Coupon
	if err := json.Unmarshal(raw, &coupon); err != nil {
		return nil
	}
	return &coupon
}

func (cc *CouponCache) Set(ctx context.Context, coupon *models.Coupon) {
	if cc == nil {
		return
	}
	raw, err := json.Marshal(coupon)
	if err != nil {
		return
	}
	cc.client.Set(ctx, key(coupon.Code), raw, cc.ttl)
}

// Invalidate drops a code after an admin edit or a checkout that consumed a
// usage.
func (cc *CouponCache) Invalidate(ctx context.Context, code string) {
	if cc == nil {
		return
	}
	cc.client.Del(ctx, key(code))
}
