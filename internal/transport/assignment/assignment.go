package assignment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainassignment "github.com/alanyang/hemotask/internal/domain/assignment"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
	"github.com/alanyang/hemotask/internal/transport/engine"
)

func Register(rg *gin.RouterGroup, sel portselector.Selector) {
	rg.POST("/select", selectTechnician(sel))
}

// selectTechnician always answers with a Result body; the status code tells
// success (200), no candidate (422) and unparseable input (400) apart.
func selectTechnician(sel portselector.Selector) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, domainassignment.Failed(domainassignment.MessageInvalidInput))
			return
		}

		res := engine.Evaluate(raw, sel)
		switch err := res.Err(); {
		case err == nil:
			c.JSON(http.StatusOK, res)
		case errors.Is(err, domainassignment.ErrMalformedInput):
			c.JSON(http.StatusBadRequest, res)
		default:
			c.JSON(http.StatusUnprocessableEntity, res)
		}
	}
}
