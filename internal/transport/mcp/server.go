package mcp

import (
	"context"
	"log/slog"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	portselector "github.com/alanyang/hemotask/internal/port/selector"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"
)

// Server wraps the mcp-go MCPServer and its StreamableHTTPServer. Tools live
// in tools.go, prompts in prompts.go, session state in registry.go.
type Server struct {
	httpSrv *mcpserver.StreamableHTTPServer
	reg     *SessionRegistry
}

// New builds the technician-facing MCP endpoint. reg is created before the
// task service so it can be injected as its notifier.
func New(
	reg *SessionRegistry,
	techSvc *techsvc.Service,
	taskSvc *tasksvc.Service,
	sel portselector.Selector,
) *Server {
	s := &Server{reg: reg}

	hooks := &mcpserver.Hooks{}
	hooks.OnUnregisterSession = append(hooks.OnUnregisterSession, s.onSessionClose)

	mcpSrv := mcpserver.NewMCPServer(
		"hemotask",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithHooks(hooks),
	)
	reg.SetMCPServer(mcpSrv)

	RegisterTools(mcpSrv, reg, techSvc, taskSvc, sel)
	RegisterPrompts(mcpSrv, taskSvc)

	s.httpSrv = mcpserver.NewStreamableHTTPServer(mcpSrv)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

func (s *Server) Registry() *SessionRegistry {
	return s.reg
}

func (s *Server) onSessionClose(ctx context.Context, session mcpserver.ClientSession) {
	techID, ok := s.reg.Unregister(session.SessionID())
	if !ok {
		return
	}
	slog.InfoContext(ctx, "mcp: session closed", "session_id", session.SessionID(), "technician_id", techID)
}
