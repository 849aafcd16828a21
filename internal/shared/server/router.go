package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "docbuilder-backend/internal/auth"
	"docbuilder-backend/internal/contact"
	"docbuilder-backend/internal/dashboard"
	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/internal/invoices"
	"docbuilder-backend/internal/resumes"
	"docbuilder-backend/internal/services/health"
	"docbuilder-backend/internal/shared/config"
	"docbuilder-backend/internal/shared/metrics"
	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/server/respond"
	"docbuilder-backend/internal/shared/storage/object"
	"docbuilder-backend/internal/users"
)

// RouterDeps are the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	Store            object.Store
	PasswordAuth     *googleauth.PasswordService
	GoogleAuth       *googleauth.GoogleService
	UserHandler      *users.Handler
	ResumeHandler    *resumes.Handler
	InvoiceHandler   *invoices.Handler
	DashboardHandler *dashboard.Handler
	ContactHandler   *contact.Handler
	RateLimiter      middleware.Limiter
}

// Routes that skip the bearer token check.
var publicPrefixes = []string{
	"/api/v1/auth/",
	"/api/v1/health",
	"/api/v1/metrics",
	"/api/v1/i18n/",
	"/api/v1/contact",
	"/files/",
}

var rateLimitRules = map[string]middleware.RateLimitRule{
	"DEFAULT": {Rate: 10, Burst: 40},
	"PREVIEW": {Rate: 5, Burst: 20},
	"EXPORT":  {Rate: 0.2, Burst: 3},
	"AUTH":    {Rate: 0.5, Burst: 5},
	"CONTACT": {Rate: 0.05, Burst: 3},
}

var rateLimitGroups = map[string]string{
	"GET /api/v1/resumes/:id/preview": "PREVIEW",
	"POST /api/v1/resumes/preview":    "PREVIEW",
	"POST /api/v1/resumes/:id/pages":  "PREVIEW",
	"GET /api/v1/resumes/:id/export":  "EXPORT",
	"GET /api/v1/invoices/:id/export": "EXPORT",
	"POST /api/v1/auth/signup":        "AUTH",
	"POST /api/v1/auth/signin":        "AUTH",
	"POST /api/v1/contact":            "CONTACT",
	"GET /api/v1/health":              middleware.NoRateLimit,
	"GET /api/v1/metrics":             middleware.NoRateLimit,
	"GET /files/*key":                 middleware.NoRateLimit,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	handlers := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Logging(),
		middleware.Auth(publicPrefixes...),
	}
	if deps.Config.RateLimitEnabled {
		handlers = append(handlers, middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rateLimitRules,
			DefaultGroup: "DEFAULT",
			GroupFor:     middleware.GroupByRoute(rateLimitGroups),
			Limiter:      deps.RateLimiter,
		}))
	}
	r.Use(handlers...)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	api.GET("/metrics", metrics.Handler())
	i18n.RegisterRoutes(api)

	if deps.PasswordAuth != nil {
		deps.PasswordAuth.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.InvoiceHandler != nil {
		deps.InvoiceHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.RegisterRoutes(api)
	}
	if deps.Store != nil {
		r.GET("/files/*key", servePublicFile(deps.Store))
		api.GET("/files/*key", serveOwnedFile(deps.Store))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
