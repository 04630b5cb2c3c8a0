package service

import (
	"sync"

	"invoiceflow/internal/agent"
)

// AgentRegistry owns the session-to-agent mapping. Each entry carries its
// own mutex so concurrent requests for the same session serialize their
// turns before touching the record, while different sessions proceed
// independently.
type AgentRegistry struct {
	mu      sync.Mutex
	entries map[string]*AgentEntry
	factory func(userID string) *agent.Agent
}

// AgentEntry pairs an agent with the lock guarding its turns.
type AgentEntry struct {
	Mu    sync.Mutex
	Agent *agent.Agent
}

// NewAgentRegistry creates a registry that builds missing agents with
// factory.
func NewAgentRegistry(factory func(userID string) *agent.Agent) *AgentRegistry {
	return &AgentRegistry{
		entries: make(map[string]*AgentEntry),
		factory: factory,
	}
}

// Entry returns the agent entry for a session, creating it on first use.
func (r *AgentRegistry) Entry(sessionID, userID string) *AgentEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &AgentEntry{Agent: r.factory(userID)}
		r.entries[sessionID] = entry
	}
	return entry
}

// Remove drops a session's agent.
func (r *AgentRegistry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}
