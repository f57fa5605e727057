package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domaintask "github.com/alanyang/hemotask/internal/domain/task"
	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
	"github.com/alanyang/hemotask/internal/mocks"
	selectorsvc "github.com/alanyang/hemotask/internal/service/selector"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type toolsDeps struct {
	techRepo *mocks.MockTechnicianRepository
	taskRepo *mocks.MockTaskRepository
	audit    *mocks.MockAuditRepository
	bus      *mocks.MockEventBus
	notifier *mocks.MockTechnicianNotifier
	locker   *mocks.MockAdvisoryLocker
}

func newToolsDeps(t *testing.T) (*techsvc.Service, *tasksvc.Service, toolsDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := toolsDeps{
		techRepo: mocks.NewMockTechnicianRepository(ctrl),
		taskRepo: mocks.NewMockTaskRepository(ctrl),
		audit:    mocks.NewMockAuditRepository(ctrl),
		bus:      mocks.NewMockEventBus(ctrl),
		notifier: mocks.NewMockTechnicianNotifier(ctrl),
		locker:   mocks.NewMockAdvisoryLocker(ctrl),
	}
	techSvc := techsvc.NewService(d.techRepo, d.audit, d.bus)
	taskSvc := tasksvc.NewService(d.taskRepo, d.techRepo, d.audit, d.bus,
		selectorsvc.NewService(nil), d.notifier, d.locker, 3)
	return techSvc, taskSvc, d
}

func quietSideEffects(d toolsDeps) {
	d.audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func makeReq(args map[string]any) mcpmcp.CallToolRequest {
	var req mcpmcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(r *mcpmcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	b, _ := json.Marshal(r.Content[0])
	var m map[string]interface{}
	json.Unmarshal(b, &m) //nolint:errcheck
	if t, ok := m["text"].(string); ok {
		return t
	}
	return ""
}

func strPtr(s string) *string { return &s }

// ── register_technician ───────────────────────────────────────────────────────

func TestRegisterTechnicianHandler(t *testing.T) {
	tests := []struct {
		name         string
		args         map[string]any
		setup        func(d toolsDeps)
		wantContains string
	}{
		{
			name: "known technician is returned",
			args: map[string]any{"technician_id": "T1"},
			setup: func(d toolsDeps) {
				d.techRepo.EXPECT().GetByID(gomock.Any(), "T1").
					Return(domaintech.New("T1", "Falcon", []string{"CBC"}, domaintech.ShiftDay), nil)
			},
			wantContains: `"code_name":"Falcon"`,
		},
		{
			name: "unknown technician",
			args: map[string]any{"technician_id": "T404"},
			setup: func(d toolsDeps) {
				d.techRepo.EXPECT().GetByID(gomock.Any(), "T404").Return(domaintech.Technician{}, domaintech.ErrNotFound)
			},
			wantContains: "error: technician not found",
		},
		{
			name:         "missing id",
			args:         map[string]any{},
			setup:        func(d toolsDeps) {},
			wantContains: "error: technician_id required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			techSvc, _, d := newToolsDeps(t)
			tt.setup(d)
			handler := registerTechnicianHandler(NewSessionRegistry(), techSvc)

			result, err := handler(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.Contains(t, resultText(result), tt.wantContains)
		})
	}
}

// ── select_technician ────────────────────────────────────────────────────────

func TestSelectTechnicianHandler(t *testing.T) {
	handler := selectTechnicianHandler(selectorsvc.NewService(nil))

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "least loaded",
			payload: `{"task":{"required_skill":"CBC","priority":"urgent"},"technicians":[{"id":"T1","skills":["CBC"],"active_tasks":2},{"id":"T2","skills":["CBC"],"active_tasks":0}]}`,
			want:    `{"assigned_to":"T2","error":null}`,
		},
		{
			name:    "empty list",
			payload: `{"task":{"required_skill":"CBC","priority":"urgent"},"technicians":[]}`,
			want:    `{"assigned_to":null,"error":"No eligible technician"}`,
		},
		{
			name:    "garbage",
			payload: `{{`,
			want:    `{"assigned_to":null,"error":"Invalid input"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), makeReq(map[string]any{"payload": tt.payload}))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, resultText(result))
		})
	}
}

// ── my_tasks ─────────────────────────────────────────────────────────────────

func TestMyTasksHandler(t *testing.T) {
	tasks := []domaintask.Task{
		{ID: "TASK_000001", Status: domaintask.StatusAssigned, AssignedTo: strPtr("T1")},
		{ID: "TASK_000002", Status: domaintask.StatusCompleted, AssignedTo: strPtr("T1")},
	}

	t.Run("hides completed by default", func(t *testing.T) {
		_, taskSvc, d := newToolsDeps(t)
		d.taskRepo.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f domaintask.ListFilters) ([]domaintask.Task, error) {
				assert.Equal(t, "T1", *f.AssignedTo)
				assert.True(t, f.OldestFirst)
				return tasks, nil
			})

		result, err := myTasksHandler(NewSessionRegistry(), taskSvc)(context.Background(),
			makeReq(map[string]any{"technician_id": "T1"}))
		require.NoError(t, err)

		var got []domaintask.Task
		require.NoError(t, json.Unmarshal([]byte(resultText(result)), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "TASK_000001", got[0].ID)
	})

	t.Run("include_completed", func(t *testing.T) {
		_, taskSvc, d := newToolsDeps(t)
		d.taskRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(tasks, nil)

		result, err := myTasksHandler(NewSessionRegistry(), taskSvc)(context.Background(),
			makeReq(map[string]any{"technician_id": "T1", "include_completed": true}))
		require.NoError(t, err)

		var got []domaintask.Task
		require.NoError(t, json.Unmarshal([]byte(resultText(result)), &got))
		assert.Len(t, got, 2)
	})

	t.Run("no identity", func(t *testing.T) {
		_, taskSvc, _ := newToolsDeps(t)
		result, err := myTasksHandler(NewSessionRegistry(), taskSvc)(context.Background(), makeReq(map[string]any{}))
		require.NoError(t, err)
		assert.Contains(t, resultText(result), "error: technician_id required")
	})
}

// ── start_task / complete_task ───────────────────────────────────────────────

func TestStartTaskHandler(t *testing.T) {
	assigned := domaintask.Task{ID: "TASK_1", Status: domaintask.StatusAssigned, AssignedTo: strPtr("T1")}

	tests := []struct {
		name         string
		args         map[string]any
		setup        func(d toolsDeps)
		wantContains string
	}{
		{
			name: "assignee starts",
			args: map[string]any{"task_id": "TASK_1", "technician_id": "T1"},
			setup: func(d toolsDeps) {
				d.taskRepo.EXPECT().GetByID(gomock.Any(), "TASK_1").Return(assigned, nil)
				d.taskRepo.EXPECT().Start(gomock.Any(), "TASK_1", "T1", gomock.Any()).Return(nil)
				quietSideEffects(d)
			},
			wantContains: `"status":"in_progress"`,
		},
		{
			name: "other technician refused",
			args: map[string]any{"task_id": "TASK_1", "technician_id": "T2"},
			setup: func(d toolsDeps) {
				d.taskRepo.EXPECT().GetByID(gomock.Any(), "TASK_1").Return(assigned, nil)
			},
			wantContains: "error: not authorized",
		},
		{
			name: "unknown task",
			args: map[string]any{"task_id": "TASK_9", "technician_id": "T1"},
			setup: func(d toolsDeps) {
				d.taskRepo.EXPECT().GetByID(gomock.Any(), "TASK_9").Return(domaintask.Task{}, domaintask.ErrNotFound)
			},
			wantContains: "error: task not found",
		},
		{
			name:         "missing task id",
			args:         map[string]any{"technician_id": "T1"},
			setup:        func(d toolsDeps) {},
			wantContains: "error: task_id required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, taskSvc, d := newToolsDeps(t)
			tt.setup(d)
			result, err := startTaskHandler(NewSessionRegistry(), taskSvc)(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.Contains(t, resultText(result), tt.wantContains)
		})
	}
}

func TestCompleteTaskHandler(t *testing.T) {
	started := time.Now().Add(-2 * time.Minute)
	inProgress := domaintask.Task{ID: "TASK_1", Status: domaintask.StatusInProgress, AssignedTo: strPtr("T1"), StartedAt: &started}

	_, taskSvc, d := newToolsDeps(t)
	d.locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error { return fn(ctx) })
	d.taskRepo.EXPECT().GetByID(gomock.Any(), "TASK_1").Return(inProgress, nil)
	d.taskRepo.EXPECT().Complete(gomock.Any(), "TASK_1", "T1", gomock.Any(), gomock.Any()).Return(nil)
	d.techRepo.EXPECT().AdjustActiveTasks(gomock.Any(), "T1", -1).Return(nil)
	quietSideEffects(d)

	result, err := completeTaskHandler(NewSessionRegistry(), taskSvc)(context.Background(),
		makeReq(map[string]any{"task_id": "TASK_1", "technician_id": "T1"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(result), `"status":"completed"`)
}
