package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gospives/platform/internal/auth"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/handler"
	adminhandler "github.com/gospives/platform/internal/handler/admin"
	"github.com/gospives/platform/internal/infra"
	"github.com/gospives/platform/internal/provider"
	"github.com/gospives/platform/internal/repository"
	"github.com/gospives/platform/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Issuer *auth.TokenIssuer
	Config *infra.Config
	Logger *slog.Logger

	// Pages, when set, serves the browser routes behind the page guard.
	// Nil keeps the API-only surface.
	Pages http.Handler
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	cfg := deps.Config
	logger := deps.Logger

	// Repositories
	regRepo := repository.NewPgRegistrationRepository()
	outboxRepo := repository.NewOutboxRepository()

	// External providers
	imageStore := provider.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	sheet := provider.NewSheetsProvider(cfg.NewsletterEndpoint, cfg.NewsletterToken)

	// Services
	regSvc := service.NewRegistrationService(pool, regRepo, outboxRepo, logger)
	authSvc := service.NewAuthService(pool, regRepo, deps.Issuer, logger)
	dirSvc := service.NewDirectoryService(pool, regRepo, logger)
	adminSvc := service.NewAdminService(pool, regRepo, outboxRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, cfg.CookieSecure, cfg.SessionExpiry)
	regHandler := handler.NewRegistrationHandler(regSvc)
	talentHandler := handler.NewTalentHandler(dirSvc)
	userHandler := handler.NewUserHandler(regSvc)
	uploadHandler := handler.NewUploadHandler(imageStore)
	newsHandler := handler.NewNewsletterHandler(sheet)
	userAdmin := adminhandler.NewUserAdminHandler(adminSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(cfg.CORSOrigin))

	r.Route("/api", func(r chi.Router) {
		r.Use(handler.JSONContentType)

		// Public routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Route("/registration", func(r chi.Router) {
			r.Post("/step1", regHandler.Step1)
			r.Post("/step3", regHandler.Step3)
			r.Post("/step4", regHandler.Step4)
		})
		r.Post("/upload", uploadHandler.Upload)
		r.Post("/newsletter", newsHandler.Subscribe)
		r.Get("/talents", talentHandler.List)
		r.Get("/player/{nickname}", talentHandler.Profile)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(deps.Issuer, authSvc))

			r.Get("/users/me", userHandler.Me)
			r.Patch("/users/me/socials", userHandler.UpdateSocials)

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))

				r.Get("/users", userAdmin.ListUsers)
				r.Post("/users", userAdmin.AddUser)
				r.Get("/stats", userAdmin.Stats)
				r.Get("/recent-players", userAdmin.RecentPlayers)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(handler.JSONContentType)
		r.Get("/health", handler.HealthHandler(pool))
	})

	// Browser routes behind the redirect guard
	if deps.Pages != nil {
		guard := auth.NewPageGuard(deps.Issuer, authSvc)

		r.Handle("/login", guard.RedirectAuthenticated(deps.Pages))
		r.Handle("/register", guard.RedirectAuthenticated(deps.Pages))
		r.Handle("/register/*", guard.RedirectAuthenticated(deps.Pages))
		r.Handle("/dashboard", guard.Protect(deps.Pages))
		r.Handle("/dashboard/*", guard.Protect(deps.Pages))
		r.Handle("/admin", guard.ProtectAdmin(deps.Pages))
		r.Handle("/admin/*", guard.ProtectAdmin(deps.Pages))
		r.NotFound(deps.Pages.ServeHTTP)
	}

	return r
}
