package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pdfhelper-backend/internal/ai"
	"pdfhelper-backend/internal/documents"
	"pdfhelper-backend/internal/notes"
	"pdfhelper-backend/internal/shared/config"
	"pdfhelper-backend/internal/shared/server/middleware"
	"pdfhelper-backend/internal/shared/server/respond"
	"pdfhelper-backend/internal/users"
)

// aiRateLimit bounds how fast a single user can hit the completion
// endpoints.
var aiRateLimit = middleware.RateLimitRule{Rate: 1, Burst: 8}

// Deps are the feature handlers the router mounts.
type Deps struct {
	Users     *users.Handler
	Documents *documents.Handler
	AI        *ai.Handler
	Notes     *notes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	user := api.Group("/user")
	deps.Users.RegisterPublicRoutes(user)

	usersGroup := api.Group("/users", middleware.Auth())
	deps.Users.RegisterProtectedRoutes(usersGroup)

	pdf := api.Group("/pdf", middleware.Auth())
	deps.Documents.RegisterRoutes(pdf)

	limiter := middleware.NewRateLimiter(time.Now)
	aiGroup := api.Group("/ai", middleware.Auth(), middleware.RateLimit(limiter, aiRateLimit))
	deps.AI.RegisterRoutes(aiGroup)

	notesGroup := api.Group("/notes", middleware.Auth())
	deps.Notes.RegisterRoutes(notesGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
