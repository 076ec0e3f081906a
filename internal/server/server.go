package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"lace-store/internal/cart"
	"lace-store/internal/config"
	"lace-store/internal/database"
	"lace-store/internal/domain"
	custommiddleware "lace-store/internal/middleware"
	"lace-store/internal/notification"
	"lace-store/internal/repository"
	"lace-store/internal/service"
	"lace-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the backends the server runs on. Redis and DB are optional.
type Deps struct {
	Repos    *repository.Repositories
	Carts    cart.Storage
	Telegram *notification.TelegramClient
	Redis    *redis.Client
	DB       *sql.DB
}

type Server struct {
	*http.Server
	config   *config.Config
	logger   *zap.Logger
	deps     Deps
	notifier *notification.Notifier
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack(cfg.Server.TrustProxy)...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	s := &Server{
		config: cfg,
		logger: logger,
		deps:   deps,
	}
	router.Get("/health", s.health)

	if deps.Telegram == nil {
		deps.Telegram = notification.NewTelegramClient(cfg.Telegram.APIURL, cfg.Telegram.Timeout)
	}
	repos := deps.Repos

	// Initialize services
	notifier := notification.NewNotifier(repos.Settings, deps.Telegram, cfg.Telegram.BotToken, logger)
	s.notifier = notifier
	userService := service.NewUserService(repos.Users, cfg.JWT.Secret, time.Duration(cfg.JWT.AccessExpiry)*time.Minute)
	orderService := service.NewOrderService(repos.Orders, notifier, logger)
	productService := service.NewProductService(repos.Products)
	cartService := service.NewCartService(deps.Carts, orderService)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	telegramHandler := transport.NewTelegramHandler(repos.Settings, notifier, deps.Telegram, logger)

	categories := transport.NewResourceHandler("category", repos.Categories, service.PrepareCategory, logger)
	collections := transport.NewResourceHandler("collection", repos.Collections, service.PrepareCollection, logger)
	properties := transport.NewResourceHandler("property", repos.Properties, service.PrepareProperty, logger)

	content := map[string]resourceRoutes{
		"team":    transport.NewResourceHandler[domain.TeamMember]("team member", repos.Team, nil, logger),
		"about":   transport.NewResourceHandler[domain.CompanyInfo]("company info", repos.About, nil, logger),
		"social":  transport.NewResourceHandler[domain.SocialLink]("social link", repos.Social, nil, logger),
		"seasons": transport.NewResourceHandler[domain.Season]("season", repos.Seasons, nil, logger),
		"policy":  transport.NewResourceHandler[domain.PrivacyPolicy]("privacy policy", repos.Policies, nil, logger),
	}

	authMiddleware := custommiddleware.AuthMiddleware(userService, logger)
	requireStaff := custommiddleware.RequireStaff(logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)
	limit := s.checkoutLimiter()

	router.Route("/api", func(r chi.Router) {
		// Storefront
		r.Route("/products", productHandler.ReadRoutes)
		r.Route("/categories", categories.ReadRoutes)
		r.Route("/collections", func(r chi.Router) {
			collections.ReadRoutes(r)
			r.Get("/{id}/products", productHandler.ListByCollection)
		})
		r.Route("/properties", properties.ReadRoutes)
		r.Route("/content", func(r chi.Router) {
			for kind, h := range content {
				r.Route("/"+kind, h.ReadRoutes)
			}
		})

		r.Route("/cart/{token}", func(r chi.Router) {
			cartHandler.CartRoutes(r)
			r.With(limit).Post("/checkout", cartHandler.Checkout)
		})
		r.Route("/wishlist/{token}", cartHandler.WishlistRoutes)
		r.With(limit).Post("/orders", orderHandler.Create)

		r.Post("/auth/login", userHandler.Login)
		r.With(authMiddleware).Get("/auth/me", userHandler.Me)

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)

			r.Route("/orders", func(r chi.Router) {
				r.With(requireAdmin).Post("/cleanup", orderHandler.Cleanup)
				r.Group(func(r chi.Router) {
					r.Use(requireStaff)
					orderHandler.AdminRoutes(r)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(requireStaff)
				r.Route("/products", productHandler.WriteRoutes)
				r.Route("/categories", categories.WriteRoutes)
				r.Route("/collections", collections.WriteRoutes)
				r.Route("/properties", properties.WriteRoutes)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Route("/users", userHandler.AdminRoutes)
				r.Route("/telegram", telegramHandler.Routes)
				r.Route("/content", func(r chi.Router) {
					for kind, h := range content {
						r.Route("/"+kind, h.WriteRoutes)
					}
				})
			})
		})
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

type resourceRoutes interface {
	ReadRoutes(r chi.Router)
	WriteRoutes(r chi.Router)
}

// checkoutLimiter rate limits order submission when redis is available
func (s *Server) checkoutLimiter() func(http.Handler) http.Handler {
	if s.deps.Redis == nil || s.config.RateLimit.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return custommiddleware.RateLimitMiddleware(s.deps.Redis, custommiddleware.RateLimitConfig{
		RequestsPerWindow: s.config.RateLimit.Requests,
		Window:            s.config.RateLimit.Window,
		KeyPrefix:         "ratelimit:checkout",
	}, s.logger)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"store":  s.config.Store.Driver,
	}

	if s.deps.DB != nil {
		db := database.Health(r.Context(), s.deps.DB)
		status["database"] = db
		if db["status"] != "up" {
			status["status"] = "degraded"
		}
	}

	if s.deps.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			status["status"] = "degraded"
		} else {
			status["redis"] = "up"
		}
	}

	custommiddleware.RespondWithJSON(w, http.StatusOK, status)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// pending order notifications still read telegram settings from the store
	s.notifier.Wait()

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.deps.DB != nil {
		if err := s.deps.DB.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
