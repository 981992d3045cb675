package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"
)

type windowEntry struct {
	requests []time.Time
	mu       sync.Mutex
	// evicted is set under mu when the sweeper drops the entry from the store.
	evicted bool
}

// RateLimiter allows at most max requests per client IP in any sliding window.
// X-Forwarded-For is honoured only when the direct peer is a trusted proxy.
type RateLimiter struct {
	max     int
	window  time.Duration
	trusted []netip.Prefix
	store   sync.Map
	now     func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

func NewRateLimiter(max int, window time.Duration, trusted []netip.Prefix) *RateLimiter {
	return &RateLimiter{max: max, window: window, trusted: trusted, now: time.Now}
}

// ParseTrustedProxies accepts bare IPs and CIDR ranges.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func (rl *RateLimiter) allow(ip string) bool {
	now := rl.now()
	rl.maybeSweep(now)
	cutoff := now.Add(-rl.window)

	for {
		v, _ := rl.store.LoadOrStore(ip, &windowEntry{})
		entry := v.(*windowEntry)

		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}
		entry.requests = pruneBefore(entry.requests, cutoff)
		if len(entry.requests) >= rl.max {
			entry.mu.Unlock()
			return false
		}
		entry.requests = append(entry.requests, now)
		entry.mu.Unlock()
		return true
	}
}

// maybeSweep drops keys whose window has emptied, at most once per window.
func (rl *RateLimiter) maybeSweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Sub(rl.lastSweep) < rl.window {
		rl.sweepMu.Unlock()
		return
	}
	rl.lastSweep = now
	rl.sweepMu.Unlock()

	cutoff := now.Add(-rl.window)
	rl.store.Range(func(key, v any) bool {
		entry := v.(*windowEntry)
		entry.mu.Lock()
		entry.requests = pruneBefore(entry.requests, cutoff)
		if len(entry.requests) == 0 {
			entry.evicted = true
			rl.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func pruneBefore(requests []time.Time, cutoff time.Time) []time.Time {
	kept := requests[:0]
	for _, t := range requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the direct peer unless that peer is a trusted proxy, in which case it
// is the right-most X-Forwarded-For hop that is not itself trusted.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.isTrusted(host) {
		return host
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !rl.isTrusted(hop) {
			return hop
		}
	}
	return host
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range rl.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
