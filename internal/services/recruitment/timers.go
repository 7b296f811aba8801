package recruitment

import (
	"sync"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
)

// timerRegistry tracks the pending expiration timer of each session
type timerRegistry struct {
	mu     sync.Mutex
	clock  clock.Clock
	timers map[string]clock.Timer
}

func newTimerRegistry(clk clock.Clock) *timerRegistry {
	return &timerRegistry{
		clock:  clk,
		timers: make(map[string]clock.Timer),
	}
}

// arm replaces any pending timer for the session. The timer is created under
// the registry lock so a callback that fires at once still sees its entry.
func (r *timerRegistry) arm(sessionID string, d time.Duration, f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[sessionID]; ok {
		old.Stop()
	}
	r.timers[sessionID] = r.clock.AfterFunc(max(d, 0), f)
}

// disarm stops and forgets the session's timer
func (r *timerRegistry) disarm(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[sessionID]; ok {
		t.Stop()
		delete(r.timers, sessionID)
	}
}

func (r *timerRegistry) stopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}

func (r *timerRegistry) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}
