package conversation

import "sync"

// Conversation is what the manager routes non-command updates into.
type Conversation interface {
	Advance(u Update) Stage
}

// Manager tracks the active conversation per chat. State is
// partitioned by chat id: one chat's updates never touch another
// chat's conversation. The map itself is guarded because the hosting
// transport may process different chats concurrently.
type Manager struct {
	mu     sync.Mutex
	active map[int64]Conversation
}

// NewManager creates an empty conversation registry.
func NewManager() *Manager {
	return &Manager{active: make(map[int64]Conversation)}
}

// Bind registers the active conversation for a chat, replacing any
// previous one.
func (m *Manager) Bind(chatID int64, c Conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[chatID] = c
}

// Handle routes an update into the chat's active conversation.
// Returns false when the chat has none. A terminal transition evicts
// the conversation and its session.
func (m *Manager) Handle(u Update) bool {
	m.mu.Lock()
	c, ok := m.active[u.ChatID()]
	m.mu.Unlock()
	if !ok {
		return false
	}

	if c.Advance(u) == StageTerminal {
		m.mu.Lock()
		delete(m.active, u.ChatID())
		m.mu.Unlock()
	}
	return true
}

// Evict drops a chat's conversation, if any.
func (m *Manager) Evict(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, chatID)
}

// Active reports whether a chat has a running conversation.
func (m *Manager) Active(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[chatID]
	return ok
}
