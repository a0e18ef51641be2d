package gate

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MinPromptChars is the minimum prompt length admitted for processing.
// Anything shorter is rejected before the model endpoint is contacted.
const MinPromptChars = 10

// Gate admits or rejects API-facing requests: it owns the per-caller
// cooldown ledger and the process-wide request counters. The ledger is
// keyed by caller network address and grows for the lifetime of the
// process; admission decisions for a single key are serialized by the
// mutex, handling of admitted requests is not.
type Gate struct {
	cooldown time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time

	total  atomic.Int64
	active atomic.Int64

	// overridable for tests
	now func() time.Time
}

func New(cooldown time.Duration) *Gate {
	return &Gate{
		cooldown: cooldown,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Check reports whether the caller is outside its cooldown window. When
// rejected, the returned duration is the remaining wait time.
func (g *Gate) Check(key string) (time.Duration, bool) {
	remaining := g.Remaining(key)
	return remaining, remaining <= 0
}

// Remaining returns the caller's remaining cooldown without consuming
// anything; zero means the caller may proceed
func (g *Gate) Remaining(key string) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.lastSeen[key]
	if !ok {
		return 0
	}

	elapsed := g.now().Sub(last)
	if elapsed >= g.cooldown {
		return 0
	}

	return g.cooldown - elapsed
}

// Record stamps the caller's last-request time. Called after a response
// has been produced, so a failed admission never starts a cooldown.
func (g *Gate) Record(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastSeen[key] = g.now()
}

// ActiveCallers returns the number of distinct callers in the ledger
func (g *Gate) ActiveCallers() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.lastSeen)
}

// Begin marks an admitted request in flight
func (g *Gate) Begin() {
	g.total.Add(1)
	g.active.Add(1)
}

// End marks an admitted request complete
func (g *Gate) End() {
	g.active.Add(-1)
}

// Counters returns the total and active admitted request counts
func (g *Gate) Counters() (total, active int64) {
	return g.total.Load(), g.active.Load()
}

// ValidPrompt reports whether a prompt meets the minimum length after
// trimming surrounding whitespace
func ValidPrompt(prompt string) bool {
	return len(strings.TrimSpace(prompt)) >= MinPromptChars
}
