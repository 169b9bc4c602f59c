package store

import (
	"sync"
	"time"

	"erp-assistant-backend/internal/intent"
)

type Message struct {
	Role    string
	Content string
}

// MemoryStore keeps all per-session state in process memory: the chat
// transcript, the login flag, and commands parked for confirmation.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string][]Message
	maxMessages int
	// Sessions that have passed the shared-secret login gate
	authenticated map[string]bool
	// Commands awaiting the user's acknowledgment, keyed by confirm token
	pendingByToken map[string]PendingCommand
}

func NewMemoryStore(maxMessages int) *MemoryStore {
	return &MemoryStore{
		sessions:       make(map[string][]Message),
		maxMessages:    maxMessages,
		authenticated:  make(map[string]bool),
		pendingByToken: make(map[string]PendingCommand),
	}
}

func (m *MemoryStore) Append(sessionID string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	m.trimLocked(sessionID)
}

func (m *MemoryStore) Get(sessionID string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sessions[sessionID]
	copyMsgs := make([]Message, len(msgs))
	copy(copyMsgs, msgs)
	return copyMsgs
}

func (m *MemoryStore) trimLocked(sessionID string) {
	if m.maxMessages <= 0 {
		return
	}
	msgs := m.sessions[sessionID]
	if len(msgs) > m.maxMessages {
		m.sessions[sessionID] = msgs[len(msgs)-m.maxMessages:]
	}
}

func (m *MemoryStore) SetAuthenticated(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authenticated[sessionID] = true
}

func (m *MemoryStore) IsAuthenticated(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated[sessionID]
}

func (m *MemoryStore) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.authenticated, sessionID)
	delete(m.sessions, sessionID)
}

// Pending commands expire if not confirmed in time.
var pendingTTL = 7 * time.Minute

type PendingCommand struct {
	SessionID string
	Command   intent.Validated
	UpdatedAt time.Time
}

// SetPending parks a validated command under a confirm token.
func (m *MemoryStore) SetPending(token, sessionID string, cmd intent.Validated) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingByToken[token] = PendingCommand{SessionID: sessionID, Command: cmd, UpdatedAt: time.Now()}
}

// TakePending fetches and removes the parked command, so a token dispatches
// at most once. The session must match the one that parked it.
func (m *MemoryStore) TakePending(token, sessionID string) (intent.Validated, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pendingByToken[token]
	if !ok {
		return intent.Validated{}, false
	}
	delete(m.pendingByToken, token)
	if p.SessionID != sessionID || time.Since(p.UpdatedAt) > pendingTTL {
		return intent.Validated{}, false
	}
	return p.Command, true
}
