package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domaintask "github.com/alanyang/hemotask/internal/domain/task"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"
	"github.com/alanyang/hemotask/internal/transport/engine"
)

// RegisterTools registers all MCP tools on the server.
func RegisterTools(
	s *mcpserver.MCPServer,
	reg *SessionRegistry,
	techSvc *techsvc.Service,
	taskSvc *tasksvc.Service,
	sel portselector.Selector,
) {
	s.AddTool(mcpmcp.NewTool("register_technician",
		mcpmcp.WithDescription("Bind this session to a registered technician. Assignment notifications are pushed to the bound session."),
		mcpmcp.WithString("technician_id", mcpmcp.Required(), mcpmcp.Description("Technician ID, e.g. T1")),
	), registerTechnicianHandler(reg, techSvc))

	s.AddTool(mcpmcp.NewTool("select_technician",
		mcpmcp.WithDescription(`Pick the least-loaded technician from a candidate list. Input is {"task":{...},"technicians":[...]}; output is {"assigned_to":...,"error":...}.`),
		mcpmcp.WithString("payload", mcpmcp.Required(), mcpmcp.Description("Selection request as a JSON string")),
	), selectTechnicianHandler(sel))

	s.AddTool(mcpmcp.NewTool("my_tasks",
		mcpmcp.WithDescription("List tasks assigned to this technician, oldest first. Completed tasks are hidden unless include_completed is true."),
		mcpmcp.WithString("technician_id", mcpmcp.Description("Defaults to the technician bound to this session")),
		mcpmcp.WithBoolean("include_completed", mcpmcp.Description("Also return completed tasks")),
	), myTasksHandler(reg, taskSvc))

	s.AddTool(mcpmcp.NewTool("start_task",
		mcpmcp.WithDescription("Start an assigned task. Only the assignee may start it."),
		mcpmcp.WithString("task_id", mcpmcp.Required(), mcpmcp.Description("Task ID, e.g. TASK_1a2b3c")),
		mcpmcp.WithString("technician_id", mcpmcp.Description("Defaults to the technician bound to this session")),
	), startTaskHandler(reg, taskSvc))

	s.AddTool(mcpmcp.NewTool("complete_task",
		mcpmcp.WithDescription("Complete an in-progress task and record its duration."),
		mcpmcp.WithString("task_id", mcpmcp.Required(), mcpmcp.Description("Task ID, e.g. TASK_1a2b3c")),
		mcpmcp.WithString("technician_id", mcpmcp.Description("Defaults to the technician bound to this session")),
	), completeTaskHandler(reg, taskSvc))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func registerTechnicianHandler(reg *SessionRegistry, techSvc *techsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		techID := mcpmcp.ParseString(req, "technician_id", "")
		if techID == "" {
			return mcpmcp.NewToolResultText("error: technician_id required"), nil
		}

		tech, err := techSvc.GetByID(ctx, techID)
		if err != nil {
			return mcpmcp.NewToolResultText("error: technician not found"), nil
		}

		if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
			reg.Register(session.SessionID(), tech.ID)
		}

		data, _ := json.Marshal(tech)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func selectTechnicianHandler(sel portselector.Selector) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		payload := mcpmcp.ParseString(req, "payload", "")
		data, _ := json.Marshal(engine.Evaluate([]byte(payload), sel))
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func myTasksHandler(reg *SessionRegistry, taskSvc *tasksvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		techID, ok := resolveTechnician(ctx, req, reg)
		if !ok {
			return mcpmcp.NewToolResultText("error: technician_id required (or call register_technician first)"), nil
		}
		includeCompleted := mcpmcp.ParseBoolean(req, "include_completed", false)

		tasks, err := taskSvc.List(ctx, domaintask.ListFilters{AssignedTo: &techID, OldestFirst: true})
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		out := make([]domaintask.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == domaintask.StatusCompleted && !includeCompleted {
				continue
			}
			out = append(out, t)
		}
		data, _ := json.Marshal(out)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func startTaskHandler(reg *SessionRegistry, taskSvc *tasksvc.Service) mcpserver.ToolHandlerFunc {
	return transitionHandler(reg, taskSvc.Start)
}

func completeTaskHandler(reg *SessionRegistry, taskSvc *tasksvc.Service) mcpserver.ToolHandlerFunc {
	return transitionHandler(reg, taskSvc.Complete)
}

func transitionHandler(
	reg *SessionRegistry,
	apply func(ctx context.Context, taskID, technicianID string) (domaintask.Task, error),
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		taskID := mcpmcp.ParseString(req, "task_id", "")
		if taskID == "" {
			return mcpmcp.NewToolResultText("error: task_id required"), nil
		}
		techID, ok := resolveTechnician(ctx, req, reg)
		if !ok {
			return mcpmcp.NewToolResultText("error: technician_id required (or call register_technician first)"), nil
		}

		t, err := apply(ctx, taskID, techID)
		if err != nil {
			return mcpmcp.NewToolResultText("error: " + toolError(err)), nil
		}
		data, _ := json.Marshal(t)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

// resolveTechnician prefers an explicit technician_id and falls back to the
// technician bound to the calling session.
func resolveTechnician(ctx context.Context, req mcpmcp.CallToolRequest, reg *SessionRegistry) (string, bool) {
	if id := mcpmcp.ParseString(req, "technician_id", ""); id != "" {
		return id, true
	}
	session := mcpserver.ClientSessionFromContext(ctx)
	if session == nil {
		return "", false
	}
	return reg.TechnicianFor(session.SessionID())
}

func toolError(err error) string {
	switch {
	case errors.Is(err, tasksvc.ErrNotFound):
		return "task not found"
	case errors.Is(err, tasksvc.ErrNotAuthorized):
		return "not authorized"
	default:
		return err.Error()
	}
}
