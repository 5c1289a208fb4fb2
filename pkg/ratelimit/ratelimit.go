package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Limiter is a fixed-window counter keyed by client IP.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int           // requests per window
	per     time.Duration // window size
}

type bucket struct {
	start time.Time
	used  int
}

// New creates an IP-based limiter allowing max requests per window
func New(max int, per time.Duration) *Limiter {
	return &Limiter{buckets: map[string]*bucket{}, max: max, per: per}
}

// Middleware enforces the rate limit before calling the next handler. Over
// the limit the client gets a 429 with a Retry-After hint.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, _ := net.SplitHostPort(req.RemoteAddr)

		l.mu.Lock()
		if len(l.buckets) > 10_000 {
			l.prune()
		}
		b := l.buckets[ip]
		if b == nil || time.Since(b.start) > l.per {
			b = &bucket{start: time.Now()}
			l.buckets[ip] = b
		}
		b.used++
		over := b.used > l.max
		wait := l.per - time.Since(b.start)
		l.mu.Unlock()

		if over {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, req)
	})
}

// prune drops windows that ended; caller holds the lock.
func (l *Limiter) prune() {
	for ip, b := range l.buckets {
		if time.Since(b.start) > l.per {
			delete(l.buckets, ip)
		}
	}
}
