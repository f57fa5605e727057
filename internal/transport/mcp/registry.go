package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// SessionRegistry maps MCP sessions to technicians and implements
// port/notifier.TechnicianNotifier. A technician holds at most one session;
// registering again replaces the older one.
type SessionRegistry struct {
	mu           sync.RWMutex
	bySession    map[string]string // sessionID → technicianID
	byTechnician map[string]string // technicianID → sessionID

	// mcpSrv is set after the MCP server is constructed.
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		bySession:    make(map[string]string),
		byTechnician: make(map[string]string),
	}
}

// SetMCPServer injects the mcp-go server after construction.
func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Register maps a session to a technician. Called by register_technician.
func (r *SessionRegistry) Register(sessionID, technicianID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byTechnician[technicianID]; ok {
		delete(r.bySession, old)
	}
	if prev, ok := r.bySession[sessionID]; ok && prev != technicianID {
		delete(r.byTechnician, prev)
	}
	r.bySession[sessionID] = technicianID
	r.byTechnician[technicianID] = sessionID
}

// Unregister removes a session when it closes and reports which technician
// it belonged to.
func (r *SessionRegistry) Unregister(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	techID, ok := r.bySession[sessionID]
	if !ok {
		return "", false
	}
	delete(r.bySession, sessionID)
	if r.byTechnician[techID] == sessionID {
		delete(r.byTechnician, techID)
	}
	return techID, true
}

// TechnicianFor returns the technician bound to a session.
func (r *SessionRegistry) TechnicianFor(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	techID, ok := r.bySession[sessionID]
	return techID, ok
}

func (r *SessionRegistry) IsConnected(technicianID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byTechnician[technicianID]
	return ok
}

// NotifyTechnician pushes event to the technician's session. A technician
// without a session is not an error.
func (r *SessionRegistry) NotifyTechnician(_ context.Context, technicianID string, event any) error {
	r.mu.RLock()
	sessionID, ok := r.byTechnician[technicianID]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()

	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}

	params, err := toParams(event)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	return srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params)
}

func toParams(event any) (map[string]any, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": event}, nil
	}
	return params, nil
}
