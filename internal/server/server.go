package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"qatrah-api/internal/config"
	"qatrah-api/internal/mail"
	custommiddleware "qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"
	"qatrah-api/internal/transport"
	"qatrah-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded images are served as static files
	uploads, err := upload.NewStorage(cfg.Uploads.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	// Booking notifications go out over SMTP when configured
	var mailer mail.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logger.Warn("SMTP not configured, booking notifications will be logged only")
		mailer = mail.NewNoopMailer(logger)
	}

	// Redis backs the public-endpoint rate limiter; without it the
	// public routes are simply unthrottled
	var redisClient *redis.Client
	publicLimiter := func(next http.Handler) http.Handler { return next }
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		publicLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 20,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit:public",
		}, logger)
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	labRepo := repository.NewLabPageRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// Initialize services
	authService := service.NewAuthService(adminRepo, cfg.JWT.Secret)
	bookingService := service.NewBookingService(bookingRepo, mailer, cfg.Admin.Email, logger)
	productService := service.NewProductService(productRepo)
	serviceCatalog := service.NewServiceCatalog(serviceRepo)
	labService := service.NewLabService(labRepo)
	newsService := service.NewNewsService(newsRepo)
	configService := service.NewSiteConfigService(configRepo)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	bookingHandler := transport.NewBookingHandler(bookingService, logger)
	productHandler := transport.NewProductHandler(productService, uploads, logger)
	serviceHandler := transport.NewServiceHandler(serviceCatalog, logger)
	labHandler := transport.NewLabHandler(labService, uploads, logger)
	newsHandler := transport.NewNewsHandler(newsService, uploads, logger)
	configHandler := transport.NewConfigHandler(configService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)

	// Register routes
	authHandler.RegisterRoutes(router)
	bookingHandler.RegisterRoutes(router, authMiddleware, publicLimiter)
	productHandler.RegisterRoutes(router, authMiddleware)
	serviceHandler.RegisterRoutes(router, authMiddleware)
	labHandler.RegisterRoutes(router, authMiddleware)
	newsHandler.RegisterRoutes(router, authMiddleware)
	configHandler.RegisterRoutes(router, authMiddleware)

	router.NotFound(custommiddleware.NotFoundHandler())

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
