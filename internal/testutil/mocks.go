package testutil

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrSimulated - sentinel ошибка для проверки путей обработки ошибок.
var ErrSimulated = errors.New("simulated error for testing")

// MockCache - in-memory кэш результатов для unit тестов.
// Не требует реального PostgreSQL.
type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	kinds   map[string]string

	Gets int
	Puts int

	// GetErr/PutErr возвращаются вместо обращения к map, если заданы.
	GetErr error
	PutErr error
}

// NewMockCache создаёт пустой MockCache.
func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
		kinds:   make(map[string]string),
	}
}

// Get возвращает payload по fingerprint.
func (m *MockCache) Get(_ context.Context, fingerprint string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Gets++
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	payload, ok := m.entries[fingerprint]
	if !ok {
		return nil, false, nil
	}
	// Возвращаем копию чтобы тест не мог изменить хранимое значение
	return slices.Clone(payload), true, nil
}

// Put сохраняет payload под fingerprint.
func (m *MockCache) Put(_ context.Context, fingerprint, kind string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Puts++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.entries[fingerprint] = slices.Clone(payload)
	m.kinds[fingerprint] = kind
	return nil
}

// Set кладёт запись напрямую, минуя счётчики.
func (m *MockCache) Set(fingerprint, kind string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[fingerprint] = slices.Clone(payload)
	m.kinds[fingerprint] = kind
}

// Kinds возвращает kind каждой записи.
func (m *MockCache) Kinds() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.kinds)
}
