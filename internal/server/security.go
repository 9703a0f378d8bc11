package server

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/metrics"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter grants each client IP a fixed budget of requests per window.
// All counters reset together when the window rolls over.
type RateLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	counts      map[string]int
	windowStart time.Time
	now         func() time.Time
}

// NewRateLimiter allows limit requests per IP per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		window:      window,
		counts:      make(map[string]int),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Allow records a request from ip. When ip is over budget it returns false
// and the time left until the window rolls over.
func (l *RateLimiter) Allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.counts = make(map[string]int)
		l.windowStart = now
	}

	l.counts[ip]++
	n := l.counts[ip]
	if n <= l.limit {
		return true, 0
	}

	// one alert per hundred rejected requests
	if (n-l.limit)%100 == 1 {
		logger.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false, l.windowStart.Add(l.window).Sub(now)
}

// RateLimitMiddleware answers 429 with a Retry-After hint once a client
// exceeds the limiter's budget
func RateLimitMiddleware(trustedProxies []string, limiter *RateLimiter) func(http.Handler) http.Handler {
	trusted := parseProxies(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := limiter.Allow(clientIP(r, trusted))
			if !ok {
				metrics.HTTPRateLimited.Inc()
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(secs))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseProxies drops entries that are not IP addresses
func parseProxies(proxies []string) map[netip.Addr]struct{} {
	set := make(map[netip.Addr]struct{}, len(proxies))
	for _, p := range proxies {
		if addr, err := netip.ParseAddr(strings.TrimSpace(p)); err == nil {
			set[addr.Unmap()] = struct{}{}
		}
	}
	return set
}

// clientIP resolves the client address, honouring X-Forwarded-For only when
// the direct peer is a trusted proxy
func clientIP(r *http.Request, trusted map[netip.Addr]struct{}) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}

	addr, err := netip.ParseAddr(remote)
	if err != nil {
		return remote
	}
	if _, ok := trusted[addr.Unmap()]; !ok {
		return remote
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	// Rightmost entry is the hop our trusted proxy saw
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

var securityHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueSameOrigin,
	HeaderXSSProtection:  HeaderValueXSSBlock,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range securityHeaders {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
