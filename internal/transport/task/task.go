package task

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domaintask "github.com/alanyang/hemotask/internal/domain/task"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
)

func Register(rg *gin.RouterGroup, svc *tasksvc.Service) {
	rg.POST("/", createTask(svc))
	rg.GET("/", listTasks(svc))
	rg.GET("/:id", getTask(svc))
	rg.POST("/:id/assign", assignTask(svc))
	rg.POST("/:id/start", startTask(svc))
	rg.POST("/:id/complete", completeTask(svc))
}

type createTaskReq struct {
	TaskType      string              `json:"task_type" binding:"required"`
	RequiredSkill string              `json:"required_skill" binding:"required"`
	Priority      domaintask.Priority `json:"priority"`
	Deadline      *time.Time          `json:"deadline"`
}

func createTask(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTaskReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t, err := svc.Create(c.Request.Context(), req.TaskType, req.RequiredSkill, req.Priority, req.Deadline)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func listTasks(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := domaintask.ListFilters{OldestFirst: c.Query("order") == "oldest"}

		if v := c.Query("status"); v != "" {
			s := domaintask.Status(v)
			filters.Status = &s
		}
		if v := c.Query("priority"); v != "" {
			p := domaintask.Priority(v)
			if !p.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
				return
			}
			filters.Priority = &p
		}
		if v := c.Query("assigned_to"); v != "" {
			filters.AssignedTo = &v
		}

		tasks, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if tasks == nil {
			tasks = []domaintask.Task{}
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func getTask(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func assignTask(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.Assign(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func startTask(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		techID, ok := technicianID(c)
		if !ok {
			return
		}
		t, err := svc.Start(c.Request.Context(), c.Param("id"), techID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func completeTask(svc *tasksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		techID, ok := technicianID(c)
		if !ok {
			return
		}
		t, err := svc.Complete(c.Request.Context(), c.Param("id"), techID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func technicianID(c *gin.Context) (string, bool) {
	id := c.Query("technician_id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technician_id is required"})
		return "", false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tasksvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, tasksvc.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	case errors.Is(err, tasksvc.ErrNoEligibleTechnicians):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No eligible technicians available"})
	case errors.Is(err, tasksvc.ErrNotAssignable),
		errors.Is(err, tasksvc.ErrInvalidTransition),
		errors.Is(err, tasksvc.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domaintask.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
