package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/hemotask/internal/domain/event"
	portcache "github.com/alanyang/hemotask/internal/port/cache"
	porteventbus "github.com/alanyang/hemotask/internal/port/eventbus"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
	auditsvc "github.com/alanyang/hemotask/internal/service/audit"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"

	assignmenthandler "github.com/alanyang/hemotask/internal/transport/assignment"
	audithandler "github.com/alanyang/hemotask/internal/transport/audit"
	mcptransport "github.com/alanyang/hemotask/internal/transport/mcp"
	taskhandler "github.com/alanyang/hemotask/internal/transport/task"
	techhandler "github.com/alanyang/hemotask/internal/transport/technician"
	wshandler "github.com/alanyang/hemotask/internal/transport/ws"
)

const HealthStatus = "HemoTask API running"

// RouterConfig carries the router's non-service dependencies.
type RouterConfig struct {
	Cache          portcache.Cache
	IdempotencyTTL time.Duration
	Metrics        http.Handler
}

func NewRouter(
	ctx context.Context,
	techSvc *techsvc.Service,
	taskSvc *tasksvc.Service,
	auditSvc *auditsvc.Service,
	selector portselector.Selector,
	mcpServer *mcptransport.Server,
	eventBus porteventbus.EventBus,
	cfg RouterConfig,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())
	r.Use(IdempotencyMiddleware(cfg.Cache, cfg.IdempotencyTTL))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": HealthStatus})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}
	if mcpServer != nil {
		r.Any("/mcp", gin.WrapH(mcpServer.Handler()))
	}

	api := r.Group("/api")

	assignmenthandler.Register(api.Group("/assignments"), selector)
	techhandler.Register(api.Group("/technicians"), techSvc)
	taskhandler.Register(api.Group("/tasks"), taskSvc)
	audithandler.Register(api.Group("/audit"), auditSvc)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// One subscription per domain channel. Clients filter on event.Type.
	for _, ch := range event.Channels() {
		c := ch
		if _, err := eventBus.Subscribe(ctx, c, func(_ context.Context, e event.Event) {
			hub.Broadcast(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", c, "error", err)
		}
	}

	return r
}
