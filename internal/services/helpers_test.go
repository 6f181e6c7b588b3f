package services_test

import (
	"sync"

	"github.com/abrezinsky/archeryscore/internal/logger"
)

func newTestLogger() logger.Logger {
	return logger.Discard()
}

// mockBroadcaster records standings change notifications
type mockBroadcaster struct {
	mu      sync.Mutex
	changed []int
}

func (m *mockBroadcaster) BroadcastStandingsChanged(competitionID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changed = append(m.changed, competitionID)
}

func (m *mockBroadcaster) calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.changed...)
}
