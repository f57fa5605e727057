package audit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
	auditsvc "github.com/alanyang/hemotask/internal/service/audit"
)

func Register(rg *gin.RouterGroup, svc *auditsvc.Service) {
	rg.GET("", listEntries(svc))
}

// listEntries answers JSON by default. format=text renders one
// "ts | entity | action | by" line per entry.
func listEntries(svc *auditsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filters domainaudit.ListFilters
		if v := c.Query("entity_id"); v != "" {
			filters.EntityID = &v
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			filters.Limit = n
		}

		entries, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if c.Query("format") == "text" {
			var b strings.Builder
			for _, e := range entries {
				b.WriteString(e.Line())
				b.WriteByte('\n')
			}
			c.String(http.StatusOK, b.String())
			return
		}
		if entries == nil {
			entries = []domainaudit.Entry{}
		}
		c.JSON(http.StatusOK, entries)
	}
}
