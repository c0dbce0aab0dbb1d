package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// fixedWindowScript счетчик с TTL окна, выставляемым при первом запросе
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter ограничение частоты запросов с фиксированным окном в Redis
// Общий для всех инстансов сервиса
type RateLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string

	// клиент из X-Forwarded-For, только за своим прокси
	trustForwarded bool
	logger         Logger
}

// NewRateLimiter создает ограничитель: limit запросов на клиента за window
// trustForwarded включается только когда сервис стоит за прокси, перезаписывающим X-Forwarded-For
func NewRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string, trustForwarded bool, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{
		rdb:            rdb,
		limit:          limit,
		window:         window,
		prefix:         prefix,
		trustForwarded: trustForwarded,
		logger:         logger,
	}
}

// Middleware отклоняет запросы сверх лимита с 429
// При недоступности Redis запрос пропускается
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := rl.incr(r.Context(), rl.prefix+":"+rl.clientKey(r))
		if err != nil {
			rl.logger.Warn("RateLimiter: redis error, letting request through: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(rl.limit) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected rate limit script result %T", res)
	}
}

// clientKey без доверенного прокси X-Forwarded-For игнорируется: заголовок задает сам клиент
func (rl *RateLimiter) clientKey(r *http.Request) string {
	if rl.trustForwarded {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
