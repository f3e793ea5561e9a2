package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── API rate limiter ──────────────────────────────────────────────────────────

// rateEntry tracks request counts per IP for the current window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// rateLimiter is a fixed-window counter per client IP.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	entries   map[string]*rateEntry
	nextPurge time.Time
}

// RateLimiter allows limit requests per window and per IP. Expired entries
// are swept by the requests themselves, so the limiter owns no goroutine.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		limit:     limit,
		window:    window,
		entries:   make(map[string]*rateEntry),
		nextPurge: time.Now().Add(purgeInterval),
	}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()

	rl.mu.Lock()
	if now := time.Now(); now.After(rl.nextPurge) {
		rl.purgeLocked(now)
		rl.nextPurge = now.Add(purgeInterval)
	}
	entry, exists := rl.entries[ip]
	if !exists {
		entry = &rateEntry{}
		rl.entries[ip] = entry
	}
	rl.mu.Unlock()

	entry.mu.Lock()
	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(rl.window)
	}
	entry.count++
	over := entry.count > rl.limit
	retryAt := entry.windowEnd
	entry.mu.Unlock()

	if over {
		c.Header("Retry-After", retryAt.UTC().Format(http.TimeFormat))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Trop de requêtes, veuillez réessayer dans un instant"))
		return
	}
	c.Next()
}

// ── Purge ─────────────────────────────────────────────────────────────────────
// Removes expired entries so IPs that never return do not accumulate.

const purgeInterval = 5 * time.Minute

func (rl *rateLimiter) purge(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.purgeLocked(now)
}

// purgeLocked expects rl.mu to be held.
func (rl *rateLimiter) purgeLocked(now time.Time) int {
	purged := 0
	for ip, entry := range rl.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(rl.entries)).
			Msg("rate limiter map purged")
	}
	return purged
}
