// README: Redis read-through caches for distance lookups and geocoded coordinates.
package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"caravan/internal/types"
)

// CachedSource caches found distances. Misses are not cached so a newly
// seeded pair shows up without waiting for expiry. Redis errors fall
// through to the wrapped source.
type CachedSource struct {
	Source
	redis redis.UniversalClient
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedSource(src Source, rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) *CachedSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedSource{Source: src, redis: rdb, ttl: ttl, log: log}
}

func distanceKey(originID, destinationID int64) string {
	return fmt.Sprintf("distance:%d:%d", originID, destinationID)
}

func (c *CachedSource) Distance(ctx context.Context, originID, destinationID int64) (float64, bool, error) {
	key := distanceKey(originID, destinationID)
	km, err := c.redis.Get(ctx, key).Float64()
	switch {
	case err == nil:
		return km, true, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("distance cache read failed", zap.String("key", key), zap.Error(err))
	}

	km, ok, err := c.Source.Distance(ctx, originID, destinationID)
	if err != nil || !ok {
		return km, ok, err
	}
	if err := c.redis.Set(ctx, key, strconv.FormatFloat(km, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn("distance cache write failed", zap.String("key", key), zap.Error(err))
	}
	return km, true, nil
}

// CachedGeocoder remembers geocoded coordinates per city id.
type CachedGeocoder struct {
	next  Geocoder
	redis redis.UniversalClient
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedGeocoder(next Geocoder, rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) *CachedGeocoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedGeocoder{next: next, redis: rdb, ttl: ttl, log: log}
}

func geocodeKey(id int64) string {
	return fmt.Sprintf("geocode:%d", id)
}

func (c *CachedGeocoder) Geocode(ctx context.Context, l Location) (types.Point, error) {
	key := geocodeKey(l.ID)
	raw, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		if p, ok := parsePoint(raw); ok {
			return p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := c.next.Geocode(ctx, l)
	if err != nil {
		return types.Point{}, err
	}
	if err := c.redis.Set(ctx, key, formatPoint(p), c.ttl).Err(); err != nil {
		c.log.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
	return p, nil
}

func formatPoint(p types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func parsePoint(raw string) (types.Point, bool) {
	lat, lng, found := strings.Cut(raw, ",")
	if !found {
		return types.Point{}, false
	}
	la, err1 := strconv.ParseFloat(lat, 64)
	ln, err2 := strconv.ParseFloat(lng, 64)
	if err1 != nil || err2 != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: la, Lng: ln}, true
}
