package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// incrWindowSource increments the window counter and arms its expiry in one
// step. Any key found without a TTL gets one, so a window can never outlive
// its duration.
const incrWindowSource = `local c = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return c`

var incrWindowScript = rueidis.NewLuaScript(incrWindowSource)

// RedisCounter shares fixed-window counts across instances, one key per
// client and window.
type RedisCounter struct {
	client rueidis.Client
	prefix string
}

func NewRedisCounter(client rueidis.Client, prefix string) *RedisCounter {
	return &RedisCounter{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	keys := []string{r.prefix + key}
	args := []string{strconv.FormatInt(window.Milliseconds(), 10)}

	return incrWindowScript.Exec(ctx, r.client, keys, args).AsInt64()
}
