// Package middleware provides the HTTP middleware of the API server.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shashiranjanraj/bizapi/pkg/response"
)

// window is a fixed-window request count for one client.
type window struct {
	count   int
	resetAt time.Time
}

// limiter counts requests per client IP. Expired windows are swept on the
// first request after each period, so no background goroutine is needed.
type limiter struct {
	max    int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	nextSweep time.Time
}

func newLimiter(max int, period time.Duration) *limiter {
	return &limiter{max: max, period: period, now: time.Now, clients: map[string]*window{}}
}

// allow records one request for ip and returns how many remain in the
// window and when it resets.
func (l *limiter) allow(ip string) (ok bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, k)
			}
		}
		l.nextSweep = now.Add(l.period)
	}

	w, found := l.clients[ip]
	if !found || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.clients[ip] = w
	}

	w.count++
	remaining = l.max - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= l.max, remaining, w.resetAt
}

// clientIP is RemoteAddr without its port. Forwarding headers are ignored
// here; behind a trusted proxy chi's RealIP rewrites RemoteAddr first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit allows each client IP max requests per period and answers the
// rest with 429. A max of zero or less disables the limit.
//
//	middleware.RateLimit(config.RateLimit(), time.Minute)
func RateLimit(max int, period time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newLimiter(max, period))
}

func rateLimit(l *limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l.max <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, resetAt := l.allow(clientIP(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				wait := int(resetAt.Sub(l.now()).Seconds() + 0.999)
				if wait < 1 {
					wait = 1
				}
				h.Set("Retry-After", strconv.Itoa(wait))
				response.Message(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
