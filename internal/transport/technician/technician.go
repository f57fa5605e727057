package technician

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"
)

func Register(rg *gin.RouterGroup, svc *techsvc.Service) {
	rg.POST("/", registerTechnician(svc))
	rg.GET("/", listTechnicians(svc))
	rg.GET("/:id", getTechnician(svc))
	rg.POST("/:id/shift", changeShift(svc))
}

type registerReq struct {
	ID       string           `json:"id" binding:"required"`
	CodeName string           `json:"code_name" binding:"required"`
	Skills   []string         `json:"skills"`
	Shift    domaintech.Shift `json:"shift"`
}

func registerTechnician(svc *techsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t, err := svc.Register(c.Request.Context(), req.ID, req.CodeName, req.Skills, req.Shift)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func listTechnicians(svc *techsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters domaintech.ListFilters
		if v := c.Query("shift"); v != "" {
			s := domaintech.Shift(v)
			if !s.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift"})
				return
			}
			filters.Shift = &s
		}
		if v := c.Query("skill"); v != "" {
			filters.Skill = &v
		}

		techs, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if techs == nil {
			techs = []domaintech.Technician{}
		}
		c.JSON(http.StatusOK, techs)
	}
}

func getTechnician(svc *techsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

type shiftReq struct {
	Shift domaintech.Shift `json:"shift" binding:"required"`
}

func changeShift(svc *techsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shiftReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t, err := svc.ChangeShift(c.Request.Context(), c.Param("id"), req.Shift)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domaintech.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
	case errors.Is(err, domaintech.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Technician already exists"})
	case errors.Is(err, techsvc.ErrInvalidShift):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
