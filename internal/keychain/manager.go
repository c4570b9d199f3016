// Package keychain provides centralized, thread-safe access to the OS
// credential store. The webtrigger URL embeds a secret token, so it is
// stored here rather than in the plain-text config file.
package keychain

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "fsql"

// KeyWebtriggerURL is the keychain item holding the endpoint URL.
const KeyWebtriggerURL = "webtrigger_url"

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides thread-safe operations on the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the OS keyring for the fsql namespace.
func NewManager() (*Manager, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
	})
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the global keychain manager, creating it on first
// call and retrying after a failed initialization.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	globalManager, globalError = NewManager()
	if globalError != nil {
		globalManager = nil
		return nil, globalError
	}
	return globalManager, nil
}

// SaveWebtriggerURL stores the webtrigger URL in the keychain.
func (m *Manager) SaveWebtriggerURL(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyWebtriggerURL, Data: []byte(url)})
}

// LoadWebtriggerURL retrieves the webtrigger URL from the keychain.
func (m *Manager) LoadWebtriggerURL() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyWebtriggerURL)
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", errors.New("empty webtrigger URL")
	}
	return string(it.Data), nil
}

// ClearWebtriggerURL removes the stored webtrigger URL.
func (m *Manager) ClearWebtriggerURL() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.ring.Remove(KeyWebtriggerURL)
	return nil
}
