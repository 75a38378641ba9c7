package summary

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror is a read-side copy of committed summaries.
type Mirror interface {
	Get(ctx context.Context, listingID int64) (*Summary, error)
	// Set stores s unless the mirror already holds the same or a newer version.
	Set(ctx context.Context, s *Summary) error
}

// setIfNewer writes the summary hash only when ARGV[1] is above the stored version.
// KEYS[1] summary key; ARGV[1] version, ARGV[2] JSON payload, ARGV[3] TTL in ms.
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// RedisMirror stores each summary as a hash of its version and JSON payload.
type RedisMirror struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisMirror creates a RedisMirror.
func NewRedisMirror(client redis.Cmdable, prefix string, ttl time.Duration) *RedisMirror {
	return &RedisMirror{client: client, prefix: prefix, ttl: ttl}
}

func (m *RedisMirror) key(listingID int64) string {
	return m.prefix + "summary:" + strconv.FormatInt(listingID, 10)
}

// Get returns the mirrored summary, or nil on a cache miss.
func (m *RedisMirror) Get(ctx context.Context, listingID int64) (*Summary, error) {
	data, err := m.client.HGet(ctx, m.key(listingID), "data").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Set stores s if its version is newer than the mirrored one. Older or equal
// versions are dropped, so a late read-through fill never replaces a publish.
func (m *RedisMirror) Set(ctx context.Context, s *Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return setIfNewer.Run(ctx, m.client, []string{m.key(s.ListingID)},
		s.Version, data, m.ttl.Milliseconds()).Err()
}
