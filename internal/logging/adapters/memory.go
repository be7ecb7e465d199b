package adapters

import (
	"sync"

	"jobhunt-insights/internal/logging/types"
)

// MemoryAdapter keeps entries in memory. Tests use it to assert on what
// the service logged.
type MemoryAdapter struct {
	name    string
	mu      sync.Mutex
	entries []types.LogEntry
}

func NewMemoryAdapter(name string) *MemoryAdapter {
	return &MemoryAdapter{name: name}
}

func (a *MemoryAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *entry)
	return nil
}

// Entries returns a snapshot of everything written so far.
func (a *MemoryAdapter) Entries() []types.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]types.LogEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Messages returns the messages logged at or above level.
func (a *MemoryAdapter) Messages(level types.LogLevel) []string {
	var messages []string
	for _, entry := range a.Entries() {
		if entry.Level >= level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func (a *MemoryAdapter) Close() error  { return nil }
func (a *MemoryAdapter) Health() error { return nil }
func (a *MemoryAdapter) Name() string  { return a.name }
