package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accessly/a11ybot/pkg/providers"
)

// Turn is one unit of user or assistant contribution. Turns are
// immutable once appended.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	HasImage  bool      `json:"has_image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Manager holds per-session conversation history in memory. History is
// private to each session key and discarded when the process exits.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string][]Turn),
	}
}

// NewSessionKey returns a fresh unique session key.
func NewSessionKey() string {
	return uuid.NewString()
}

// Append records a turn at the end of a session's history.
func (m *Manager) Append(sessionKey, role, content string, hasImage bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionKey] = append(m.sessions[sessionKey], Turn{
		Role:      role,
		Content:   content,
		HasImage:  hasImage,
		Timestamp: time.Now(),
	})
}

// History returns the ordered turns for a session as provider
// messages. Image payloads are not replayed into history; a turn that
// carried one is represented by its text only.
func (m *Manager) History(sessionKey string) []providers.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	turns := m.sessions[sessionKey]
	messages := make([]providers.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, providers.Message{
			Role:    t.Role,
			Content: t.Content,
		})
	}
	return messages
}

// Turns returns a copy of the raw turn log for a session.
func (m *Manager) Turns(sessionKey string) []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	turns := m.sessions[sessionKey]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Clear discards a session's history.
func (m *Manager) Clear(sessionKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionKey)
}

// Len reports the number of turns in a session.
func (m *Manager) Len(sessionKey string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[sessionKey])
}
