package store

import (
	"context"
	"sync"
)

// ThemeKey is the preference key holding the appearance.
const ThemeKey = "theme"

// Persisted appearance values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

func themeValue(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// MemoryPreferences keeps preferences in process memory.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferences returns an empty in-memory preference store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (m *MemoryPreferences) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryPreferences) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryPreferences) Close() error { return nil }
