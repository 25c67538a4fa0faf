package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// LookupStats holds counters for one upstream operation.
type LookupStats struct {
	Success         uint64
	Error           uint64
	DurationCount   uint64
	DurationTotalNs int64
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ExpiringItemsAdded    uint64
	FavoritesSaved        uint64
	RecipeLookups         map[string]LookupStats
	RemindersSent         uint64
	RemindersFailed       uint64
	ReminderRuns          uint64
	ReminderMatched       uint64
	ReminderRunDurationNs int64
}

// LookupOps returns the recorded operation names in sorted order.
func (s Snapshot) LookupOps() []string {
	ops := make([]string, 0, len(s.RecipeLookups))
	for op := range s.RecipeLookups {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	expiringItemsAdded    uint64
	favoritesSaved        uint64
	remindersSent         uint64
	remindersFailed       uint64
	reminderRuns          uint64
	reminderMatched       uint64
	reminderRunDurationNs int64

	mu      sync.Mutex
	lookups map[string]*LookupStats
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{lookups: make(map[string]*LookupStats)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	lookups := make(map[string]LookupStats, len(m.lookups))
	for op, stats := range m.lookups {
		lookups[op] = *stats
	}
	m.mu.Unlock()

	return Snapshot{
		ExpiringItemsAdded:    atomic.LoadUint64(&m.expiringItemsAdded),
		FavoritesSaved:        atomic.LoadUint64(&m.favoritesSaved),
		RecipeLookups:         lookups,
		RemindersSent:         atomic.LoadUint64(&m.remindersSent),
		RemindersFailed:       atomic.LoadUint64(&m.remindersFailed),
		ReminderRuns:          atomic.LoadUint64(&m.reminderRuns),
		ReminderMatched:       atomic.LoadUint64(&m.reminderMatched),
		ReminderRunDurationNs: atomic.LoadInt64(&m.reminderRunDurationNs),
	}
}

// AddExpiringItems adds to the stored ingredient counter.
func (m *InMemoryRecorder) AddExpiringItems(count int) {
	if count > 0 {
		atomic.AddUint64(&m.expiringItemsAdded, uint64(count))
	}
}

// IncFavoriteSaved increments the favorites counter.
func (m *InMemoryRecorder) IncFavoriteSaved() {
	atomic.AddUint64(&m.favoritesSaved, 1)
}

// IncRecipeLookup counts an upstream call by operation and outcome.
func (m *InMemoryRecorder) IncRecipeLookup(op, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.lookupStats(op)
	if status == "success" {
		stats.Success++
	} else {
		stats.Error++
	}
}

// ObserveRecipeLookupDuration records upstream call latency.
func (m *InMemoryRecorder) ObserveRecipeLookupDuration(op string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.lookupStats(op)
	stats.DurationCount++
	stats.DurationTotalNs += duration.Nanoseconds()
}

// IncReminderSent counts one reminder notification.
func (m *InMemoryRecorder) IncReminderSent(status string) {
	if status == "success" {
		atomic.AddUint64(&m.remindersSent, 1)
		return
	}
	atomic.AddUint64(&m.remindersFailed, 1)
}

// ObserveReminderRun records one reminder scan.
func (m *InMemoryRecorder) ObserveReminderRun(matched int, duration time.Duration) {
	atomic.AddUint64(&m.reminderRuns, 1)
	if matched > 0 {
		atomic.AddUint64(&m.reminderMatched, uint64(matched))
	}
	atomic.AddInt64(&m.reminderRunDurationNs, duration.Nanoseconds())
}

// lookupStats returns the stats entry for op. Callers hold m.mu.
func (m *InMemoryRecorder) lookupStats(op string) *LookupStats {
	stats, ok := m.lookups[op]
	if !ok {
		stats = &LookupStats{}
		m.lookups[op] = stats
	}
	return stats
}
