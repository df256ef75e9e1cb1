package client

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter ограничивает частоту запросов к бэкенду и блокирует их после ответа 429
type RateLimiter struct {
	limiter      *rate.Limiter
	mu           sync.Mutex
	blockedUntil time.Time
	now          func() time.Time
}

// Постоянный предел запросов к бэкенду и медиа
const (
	RequestsPerSecond = 20
	RequestsBurst     = 20
)

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(RequestsPerSecond), RequestsBurst),
		now:     time.Now,
	}
}

// Wait ждёт разрешения на запрос. Пока действует блокировка после 429,
// сразу возвращает RateLimitError: повторы остаются на вызывающей стороне.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	remaining := rl.blockedUntil.Sub(rl.now())
	rl.mu.Unlock()
	if remaining > 0 {
		return &RateLimitError{RetryAfter: remaining}
	}
	return rl.limiter.Wait(ctx)
}

// BlockFor запрещает запросы на указанное время. Более короткая блокировка не сокращает текущую.
func (rl *RateLimiter) BlockFor(duration time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	until := rl.now().Add(duration)
	if until.After(rl.blockedUntil) {
		rl.blockedUntil = until
	}
}

func ParseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return time.Minute // default
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return time.Minute // fallback
}
