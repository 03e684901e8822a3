package protocol

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitConfig contains per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool          `json:"enabled"`
	RequestsPerMinute int           `json:"requests_per_minute"`
	BurstLimit        int           `json:"burst_limit"`
	BlockDuration     time.Duration `json:"block_duration"`
	MaxViolations     int64         `json:"max_violations"`
	CleanupInterval   time.Duration `json:"cleanup_interval"`
}

// clientLimiter pairs a token bucket with the client's violation state.
type clientLimiter struct {
	limiter        *rate.Limiter
	lastSeen       time.Time
	violationCount int64
	blockedUntil   time.Time
}

// RateLimiter enforces per-client request limits. Each client gets a
// token bucket refilled at the configured per-minute rate; repeated
// violations block the client for BlockDuration.
type RateLimiter struct {
	logger  *logrus.Logger
	clients map[string]*clientLimiter
	config  *RateLimitConfig
	mu      sync.Mutex
}

// NewRateLimiter creates a rate limiter with defaults suited to a
// single local MCP client: one request per second sustained, bursts of
// ten.
func NewRateLimiter(logger *logrus.Logger) *RateLimiter {
	rl := &RateLimiter{
		logger:  logger,
		clients: make(map[string]*clientLimiter),
		config: &RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
			BurstLimit:        10,
			BlockDuration:     5 * time.Minute,
			MaxViolations:     5,
			CleanupInterval:   10 * time.Minute,
		},
	}

	go rl.cleanupLoop()

	return rl
}

// InitializeClient creates the token bucket for a new client.
func (rl *RateLimiter) InitializeClient(clientID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.newClientLocked(clientID)

	rl.logger.WithFields(logrus.Fields{
		"client_id":           clientID,
		"requests_per_minute": rl.config.RequestsPerMinute,
		"burst_limit":         rl.config.BurstLimit,
	}).Debug("Initialized rate limiter for client")
}

// AllowRequest reports whether the client may make a request now.
// Unknown clients are initialized on first use.
func (rl *RateLimiter) AllowRequest(clientID string) bool {
	if !rl.config.Enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[clientID]
	if !ok {
		client = rl.newClientLocked(clientID)
	}

	now := time.Now()
	client.lastSeen = now

	if now.Before(client.blockedUntil) {
		rl.logger.WithFields(logrus.Fields{
			"client_id":     clientID,
			"blocked_until": client.blockedUntil.Format(time.RFC3339),
		}).Debug("Request denied: client is blocked")
		return false
	}

	if !client.limiter.Allow() {
		client.violationCount++
		if client.violationCount >= rl.config.MaxViolations {
			client.blockedUntil = now.Add(rl.config.BlockDuration)
			rl.logger.WithFields(logrus.Fields{
				"client_id":       clientID,
				"violation_count": client.violationCount,
				"blocked_until":   client.blockedUntil.Format(time.RFC3339),
			}).Warn("Client blocked after repeated rate limit violations")
		} else {
			rl.logger.WithFields(logrus.Fields{
				"client_id":       clientID,
				"violation_count": client.violationCount,
			}).Warn("Request denied: rate limit exceeded")
		}
		return false
	}

	return true
}

// RemoveClient drops the rate limiting state for a client.
func (rl *RateLimiter) RemoveClient(clientID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.clients, clientID)
	rl.logger.WithField("client_id", clientID).Debug("Removed rate limiter data for client")
}

// GetClientStats returns rate limiting statistics for one client, or
// nil when the client is unknown.
func (rl *RateLimiter) GetClientStats(clientID string) map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[clientID]
	if !ok {
		return nil
	}

	stats := map[string]interface{}{
		"client_id":        clientID,
		"tokens_remaining": client.limiter.Tokens(),
		"violation_count":  client.violationCount,
		"blocked":          time.Now().Before(client.blockedUntil),
	}
	if !client.blockedUntil.IsZero() {
		stats["blocked_until"] = client.blockedUntil.Format(time.RFC3339)
	}
	return stats
}

// GetStats returns aggregate rate limiter statistics.
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	blockedClients := 0
	totalViolations := int64(0)
	for _, client := range rl.clients {
		if now.Before(client.blockedUntil) {
			blockedClients++
		}
		totalViolations += client.violationCount
	}

	return map[string]interface{}{
		"enabled":             rl.config.Enabled,
		"total_clients":       len(rl.clients),
		"blocked_clients":     blockedClients,
		"total_violations":    totalViolations,
		"requests_per_minute": rl.config.RequestsPerMinute,
		"burst_limit":         rl.config.BurstLimit,
		"block_duration":      rl.config.BlockDuration.String(),
		"max_violations":      rl.config.MaxViolations,
	}
}

// UpdateConfig replaces the configuration. Existing clients get fresh
// token buckets with the new limits.
func (rl *RateLimiter) UpdateConfig(config *RateLimitConfig) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.config = config
	for _, client := range rl.clients {
		client.limiter = rate.NewLimiter(perMinute(config.RequestsPerMinute), config.BurstLimit)
	}

	rl.logger.WithFields(logrus.Fields{
		"enabled":             config.Enabled,
		"requests_per_minute": config.RequestsPerMinute,
		"burst_limit":         config.BurstLimit,
		"max_violations":      config.MaxViolations,
	}).Info("Updated rate limiting configuration")
}

// newClientLocked creates the limiter state for clientID. Callers hold
// rl.mu.
func (rl *RateLimiter) newClientLocked(clientID string) *clientLimiter {
	client := &clientLimiter{
		limiter:  rate.NewLimiter(perMinute(rl.config.RequestsPerMinute), rl.config.BurstLimit),
		lastSeen: time.Now(),
	}
	rl.clients[clientID] = client
	return client
}

func perMinute(requests int) rate.Limit {
	return rate.Limit(float64(requests) / 60.0)
}

// cleanupLoop drops state for clients idle longer than an hour.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		removed := 0
		for clientID, client := range rl.clients {
			if now.Sub(client.lastSeen) > time.Hour && !now.Before(client.blockedUntil) {
				delete(rl.clients, clientID)
				removed++
			}
		}
		rl.mu.Unlock()

		if removed > 0 {
			rl.logger.WithField("cleaned_count", removed).Info("Cleaned up inactive rate limiter data")
		}
	}
}
