package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domaintask "github.com/alanyang/hemotask/internal/domain/task"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
)

// RegisterPrompts registers the shift_briefing prompt.
func RegisterPrompts(s *mcpserver.MCPServer, taskSvc *tasksvc.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("shift_briefing",
			mcpmcp.WithPromptDescription("Summary of the technician's open tasks, most urgent first."),
			mcpmcp.WithArgument("technician_id",
				mcpmcp.ArgumentDescription("Technician ID"),
				mcpmcp.RequiredArgument(),
			),
		),
		briefingHandler(taskSvc),
	)
}

var priorityRank = map[domaintask.Priority]int{
	domaintask.PriorityEmergency: 0,
	domaintask.PriorityUrgent:    1,
	domaintask.PriorityRoutine:   2,
}

func briefingHandler(taskSvc *tasksvc.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		techID := req.Params.Arguments["technician_id"]
		if techID == "" {
			return nil, fmt.Errorf("technician_id is required")
		}

		tasks, err := taskSvc.List(ctx, domaintask.ListFilters{AssignedTo: &techID, OldestFirst: true})
		if err != nil {
			return nil, fmt.Errorf("list tasks for %s: %w", techID, err)
		}

		return mcpmcp.NewGetPromptResult(
			fmt.Sprintf("Shift briefing for %s", techID),
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: Briefing(techID, tasks),
					},
				),
			},
		), nil
	}
}

// Briefing renders open tasks grouped by priority, oldest first within a
// priority.
func Briefing(technicianID string, tasks []domaintask.Task) string {
	var open []domaintask.Task
	for _, t := range tasks {
		if t.Status != domaintask.StatusCompleted {
			open = append(open, t)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Technician %s has %d open task(s).\n", technicianID, len(open))
	for rank := 0; rank <= 2; rank++ {
		for _, t := range open {
			if priorityRank[t.Priority] != rank {
				continue
			}
			fmt.Fprintf(&b, "- [%s] %s %s (skill %s, %s)\n", t.Priority, t.ID, t.TaskType, t.RequiredSkill, t.Status)
		}
	}
	return b.String()
}
