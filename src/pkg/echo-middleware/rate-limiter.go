package echomw

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// How long a client may stay quiet before its limiter is dropped.
const clientIdleTTL = time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// basic per-IP rate limiter; the /notify route triggers two outbound
// network calls per hit, so unthrottled clients get expensive fast
var (
	clients     = make(map[string]*client)
	mu          sync.Mutex
	rateLimit   int // Number of requests per second
	burst       int // Burst size (how many requests are allowed instantly)
	janitorOnce sync.Once
)

func UptdateRateLimits(rateLimitInput, burstInput int) {
	mu.Lock()
	defer mu.Unlock()
	rateLimit = rateLimitInput
	burst = burstInput
}

// getLimiter returns the rate limiter for the given IP address.
func getLimiter(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	entry, exists := clients[ip]
	if !exists {
		// Create a new rate limiter for the client
		entry = &client{limiter: rate.NewLimiter(rate.Limit(rateLimit), burst)}
		clients[ip] = entry
	}
	entry.lastSeen = time.Now()

	janitorOnce.Do(func() {
		go func() {
			for {
				time.Sleep(clientIdleTTL)
				removeIdleClients(time.Now())
			}
		}()
	})

	return entry.limiter
}

/*
removeIdleClients drops limiters that have not been touched for a full
TTL. Active clients keep their entry; deleting one mid-use would reset
its bucket and let the client burst again.
*/
func removeIdleClients(now time.Time) {
	mu.Lock()
	defer mu.Unlock()
	for ip, entry := range clients {
		if now.Sub(entry.lastSeen) >= clientIdleTTL {
			delete(clients, ip)
		}
	}
}

// Custom rate limiting middleware based on client IP address
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP() // Get the client's IP address
		limiter := getLimiter(ip)

		// Check if the request is allowed by the rate limiter
		if !limiter.Allow() {
			return c.String(http.StatusTooManyRequests, "Too many requests")
		}
		return next(c)
	}
}
