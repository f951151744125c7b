package echomw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLimiterIsStablePerClient(t *testing.T) {
	UptdateRateLimits(1, 2)

	first := getLimiter("10.0.0.1")
	second := getLimiter("10.0.0.1")

	assert.Same(t, first, second)
}

func TestRemoveIdleClientsKeepsActiveEntries(t *testing.T) {
	UptdateRateLimits(1, 2)

	active := getLimiter("10.0.0.2")
	_ = getLimiter("10.0.0.3")

	// Age one entry past the TTL; the other was just touched.
	mu.Lock()
	clients["10.0.0.3"].lastSeen = time.Now().Add(-2 * clientIdleTTL)
	mu.Unlock()

	removeIdleClients(time.Now())

	mu.Lock()
	_, idleSurvived := clients["10.0.0.3"]
	activeEntry, activeSurvived := clients["10.0.0.2"]
	mu.Unlock()

	assert.False(t, idleSurvived)
	assert.True(t, activeSurvived)
	assert.Same(t, active, activeEntry.limiter)
}
