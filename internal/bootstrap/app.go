package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	googleauth "docbuilder-backend/internal/auth"
	"docbuilder-backend/internal/contact"
	"docbuilder-backend/internal/dashboard"
	"docbuilder-backend/internal/invoices"
	"docbuilder-backend/internal/resumes"
	"docbuilder-backend/internal/services/health"
	"docbuilder-backend/internal/shared/config"
	"docbuilder-backend/internal/shared/server"
	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/storage/db"
	"docbuilder-backend/internal/shared/storage/object"
	localstore "docbuilder-backend/internal/shared/storage/object/local"
	s3store "docbuilder-backend/internal/shared/storage/object/s3"
	"docbuilder-backend/internal/shared/telemetry"
	"docbuilder-backend/internal/users"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/layout"
	"docbuilder-backend/resume/render"
	"docbuilder-backend/resume/service"
	"docbuilder-backend/resume/weight"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.Store
	Fonts  *layout.Fonts

	Pipeline         *service.Pipeline
	UsersService     *users.Service
	ResumesService   *resumes.Service
	InvoicesService  *invoices.Service
	ContactService   *contact.Service
	DashboardService *dashboard.Service
	PasswordAuth     *googleauth.PasswordService
	GoogleAuth       *googleauth.GoogleService
	Health           *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline, fonts, err := buildPipeline(cfg, store)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Redis:    buildRedis(cfg),
		Store:    store,
		Fonts:    fonts,
		Pipeline: pipeline,
		Health:   health.NewService(),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           app.Health,
		Store:            store,
		PasswordAuth:     app.PasswordAuth,
		GoogleAuth:       app.GoogleAuth,
		UserHandler:      users.NewHandler(app.UsersService),
		ResumeHandler:    resumes.NewHandler(app.ResumesService),
		InvoiceHandler:   invoices.NewHandler(app.InvoicesService),
		DashboardHandler: dashboard.NewHandler(app.DashboardService),
		ContactHandler:   contact.NewHandler(app.ContactService),
		RateLimiter:      rateLimiter(app.Redis),
	})

	return app, nil
}

// rateLimiter shares buckets through Redis when it is configured.
func rateLimiter(client *redis.Client) middleware.Limiter {
	if client != nil {
		return middleware.NewRedisRateLimiter(client)
	}
	return middleware.NewRateLimiter(nil)
}

// Close releases pooled connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:     cfg.AWSRegion,
			Bucket:     cfg.S3Bucket,
			Prefix:     cfg.S3Prefix,
			KMSKeyID:   cfg.SSEKMSKeyID,
			PublicBase: cfg.PublicBaseURL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildRedis(cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// buildPipeline loads fonts once and shares them between layout and
// rasterizing. Stored profile images are read back through the object store.
func buildPipeline(cfg config.Config, store object.Store) (*service.Pipeline, *layout.Fonts, error) {
	fonts, err := layout.LoadFonts(cfg.RenderFontRegular, cfg.RenderFontBold)
	if err != nil {
		return nil, nil, fmt.Errorf("load render fonts: %w", err)
	}

	strategy := weight.Height
	if cfg.PaginationStrategy != "" {
		if strategy, err = weight.ParseStrategy(cfg.PaginationStrategy); err != nil {
			return nil, nil, fmt.Errorf("PAGINATION_STRATEGY: %w", err)
		}
	}

	engine := layout.NewEngine(layout.DefaultGeometry(), fonts)
	rasterizer := render.NewRasterizer(fonts, store)
	exporter := export.NewExporter(rasterizer, rasterizer.Scale)
	return service.NewPipeline(engine, exporter, service.Options{
		Strategy:      strategy,
		CapacityPx:    cfg.PageCapacityPx,
		CapacityWords: cfg.PageCapacityWords,
	}), fonts, nil
}

func buildServices(app *App) error {
	var (
		userRepo    users.Repo
		resumeRepo  resumes.Repo
		invoiceRepo invoices.Repo
		contactRepo contact.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		invoiceRepo = &invoices.PGRepo{DB: app.DB}
		contactRepo = &contact.PGRepo{DB: app.DB}
		app.Health.Register("database", db.Ping(app.DB))
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		invoiceRepo = invoices.NewMemoryRepo()
		contactRepo = contact.NewMemoryRepo()
	}

	var states googleauth.StateStore
	if app.Redis != nil {
		states = googleauth.NewRedisStateStore(app.Redis)
		app.Health.Register("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	invoiceRenderer, err := invoices.NewRenderer(app.Config.RenderFontRegular, app.Config.RenderFontBold)
	if err != nil {
		return err
	}

	app.UsersService = users.NewService(userRepo)
	app.ResumesService = &resumes.Service{
		Repo:           resumeRepo,
		Pipeline:       app.Pipeline,
		Store:          app.Store,
		ArchiveExports: app.Config.ArchiveExports,
	}
	app.InvoicesService = &invoices.Service{Repo: invoiceRepo, Renderer: invoiceRenderer}
	app.ContactService = &contact.Service{
		Repo: contactRepo,
		Mailer: contact.NewEmailJSMailer(
			app.Config.EmailAPIURL,
			app.Config.EmailServiceID,
			app.Config.EmailTemplateID,
			app.Config.EmailUserID,
		),
	}
	app.DashboardService = &dashboard.Service{Resumes: app.ResumesService, Invoices: app.InvoicesService}
	app.PasswordAuth = googleauth.NewPasswordService(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		states,
		app.UsersService,
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
