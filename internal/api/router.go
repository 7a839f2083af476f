package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/nazmulhasanDEV/invoice/internal/api/handler"
	customMiddleware "github.com/nazmulhasanDEV/invoice/internal/api/middleware"
	"github.com/nazmulhasanDEV/invoice/internal/billing"
	"github.com/nazmulhasanDEV/invoice/internal/config"
	"github.com/nazmulhasanDEV/invoice/internal/demo"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/rbac"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
	"github.com/nazmulhasanDEV/invoice/internal/repository/redis"
	"github.com/nazmulhasanDEV/invoice/internal/security"
	"github.com/nazmulhasanDEV/invoice/internal/service"
)

// NewRouter creates and configures the HTTP router. The pinger is nil for the
// memory backend; redisClient is nil when Redis is disabled.
func NewRouter(
	cfg *config.Config,
	store repository.Store,
	db handler.Pinger,
	redisClient *redis.Client,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	encryptionKey := []byte(cfg.Security.EncryptionKey)
	if len(encryptionKey) > 32 {
		encryptionKey = encryptionKey[:32]
	} else if len(encryptionKey) < 32 {
		padded := make([]byte, 32)
		copy(padded, encryptionKey)
		encryptionKey = padded
	}
	encryptor, err := security.NewEncryptor(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize encryptor")
	}

	// Authorization guard over the membership store
	guard := rbac.NewGuard(store.Teams(), rbac.DefaultTable())

	// Initialize services
	authService := service.NewAuthService(store.Users(), jwtManager)
	teamService := service.NewTeamService(store.Teams(), store.Invitations(), store.Users(), cfg.Auth.InviteTTL)
	billingService := service.NewBillingService(billing.NewGateway(cfg.Stripe.SecretKey), store.Users(), store.Billing())
	settingsService := service.NewSettingsService(store.Users(), store.Settings(), encryptor)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	teamHandler := handler.NewTeamHandler(teamService)
	billingHandler := handler.NewBillingHandler(billingService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Identity provider per auth strategy
	var provider customMiddleware.IdentityProvider = customMiddleware.NewJWTIdentity(jwtManager)
	if cfg.Auth.Strategy == "demo" {
		demoUser, err := store.Users().GetByUsername(context.Background(), demo.Username)
		if err != nil || demoUser == nil {
			logger.Warn().Msg("demo user not found, falling back to jwt auth")
		} else {
			provider = customMiddleware.NewStaticIdentity(demoUser.ID, demoUser.Username)
		}
	}

	authMiddleware := customMiddleware.NewAuthMiddleware(provider)
	guardMiddleware := customMiddleware.NewGuardMiddleware(guard, logger)

	var rateLimitMiddleware *customMiddleware.RateLimitMiddleware
	if redisClient != nil {
		rateLimiter := redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		rateLimitMiddleware = customMiddleware.NewRateLimitMiddleware(rateLimiter, logger)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			if rateLimitMiddleware != nil {
				r.Use(rateLimitMiddleware.Limit)
			}

			r.Get("/auth/me", authHandler.Me)

			// Invitation acceptance is team-less: the token carries the team
			r.Post("/invitations/accept", teamHandler.AcceptInvitation)

			// Team routes
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Post("/", teamHandler.Create)

				r.Route("/{teamID}", func(r chi.Router) {
					r.Use(customMiddleware.TeamContext)

					r.Get("/", teamHandler.Get)
					r.Get("/role", teamHandler.MyRole)

					// Team management requires the manage_team permission;
					// owner-protection rules apply on top inside the service.
					r.Group(func(r chi.Router) {
						r.Use(guardMiddleware.Require(domain.PermManageTeam))

						r.Delete("/", teamHandler.Delete)
						r.Patch("/members/{memberID}", teamHandler.UpdateMemberRole)
						r.Delete("/members/{memberID}", teamHandler.RemoveMember)
						r.Post("/invitations", teamHandler.Invite)
						r.Get("/invitations", teamHandler.ListInvitations)
						r.Delete("/invitations/{invitationID}", teamHandler.DeleteInvitation)
					})

					// Any member may see the roster
					r.With(guardMiddleware.Require(domain.PermViewInvoices)).
						Get("/members", teamHandler.ListMembers)
				})
			})

			// Billing routes (user-scoped)
			r.Route("/billing", func(r chi.Router) {
				r.Post("/setup-intent", billingHandler.CreateSetupIntent)
				r.Get("/payment-methods", billingHandler.ListPaymentMethods)
				r.Post("/payment-methods", billingHandler.AttachPaymentMethod)
				r.Put("/payment-methods/{methodID}/default", billingHandler.SetDefaultPaymentMethod)
				r.Delete("/payment-methods/{methodID}", billingHandler.RemovePaymentMethod)
				r.Get("/history", billingHandler.ListHistory)
			})

			// Settings routes (user-scoped)
			r.Route("/settings", func(r chi.Router) {
				r.Get("/profile", settingsHandler.GetProfile)
				r.Patch("/profile", settingsHandler.UpdateProfile)
				r.Get("/notifications", settingsHandler.GetNotificationPreferences)
				r.Patch("/notifications", settingsHandler.UpdateNotificationPreferences)
				r.Get("/security", settingsHandler.GetSecuritySettings)
				r.Patch("/security", settingsHandler.UpdateSecuritySettings)
			})
		})
	})

	return r
}
