package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fieldops/internal/config"
	"fieldops/internal/database"
	"fieldops/internal/mailer"
	"fieldops/internal/middleware"
	"fieldops/internal/modules/clients"
	"fieldops/internal/modules/filters"
	"fieldops/internal/modules/media"
	"fieldops/internal/modules/notifications"
	"fieldops/internal/modules/prefs"
	"fieldops/internal/modules/reports"
	"fieldops/internal/modules/requests"
	"fieldops/internal/modules/visits"
	"fieldops/internal/pkg/cache"
	jwtsvc "fieldops/internal/pkg/jwt"
	"fieldops/internal/pkg/logger"
	"fieldops/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	marketRepo := repository.NewMarketRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	requestRepo := repository.NewVisitRequestRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)
	reportRepo := repository.NewReportRepository(db)
	clientRepo := repository.NewClientRepository(db)
	prefRepo := repository.NewPrefRepository(db)
	mediaRepo := media.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	// Preferences live in Redis when it is configured, the database otherwise.
	var prefStore prefs.Store = prefRepo
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zlog)
		if err != nil {
			zlog.Warn("redis unavailable, preferences fall back to database", zap.Error(err))
		} else {
			defer redisClient.Close()
			prefStore = prefs.NewRedisStore(redisClient)
		}
	}

	hub := notifications.NewHub()
	notifService := notifications.NewService(notifRepo, userRepo, hub, zlog)
	notifHandler := notifications.NewHandler(notifService, hub)

	visitService := visits.NewService(visitRepo, presenceRepo, userRepo, zlog)
	visitHandler := visits.NewHandler(visitService)

	filterService := filters.NewService(userRepo, visitRepo, zlog)
	filterHandler := filters.NewHandler(filterService)

	requestService := requests.NewService(requestRepo, marketRepo, userRepo, notifService, zlog)
	requestHandler := requests.NewHandler(requestService)

	reportService := reports.NewService(reportRepo, zlog)
	reportHandler := reports.NewHandler(reportService)

	signer := media.NewSigner(cfg.MediaSecret, cfg.SignedURLTTL)
	proxy := media.NewProxy(cfg.ProxyAllowed)
	mediaService := media.NewService(mediaRepo, signer, cfg.UploadsDir, cfg.StaticBase, proxy, zlog)
	mediaHandler := media.NewHandler(mediaService)

	prefService := prefs.NewService(prefStore, zlog)
	prefHandler := prefs.NewHandler(prefService)

	clientService := clients.NewService(clientRepo, zlog)
	clientHandler := clients.NewHandler(clientService)

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
	mailerService := mailer.NewService(clientRepo, visitRepo, presenceRepo, userRepo, sender, zlog)
	mailerHandler := mailer.NewHandler(mailerService, cfg.MailerToken)

	r := gin.New()
	r.Use(middleware.Recovery(zlog), middleware.RequestLogger(zlog), middleware.CORS())

	// Public fallback for photo URLs when signing is disabled.
	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		// signed object fetches authenticate by signature, not JWT
		mediaHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			visitHandler.RegisterRoutes(protected)
			filterHandler.RegisterRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			mediaHandler.RegisterRoutes(protected)
			prefHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				requestHandler.RegisterAdminRoutes(admin)
				notifHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	internal := r.Group("/internal")
	{
		// the mailer route carries its own scheduler header check
		mailerHandler.RegisterRoutes(internal)

		tenantRPC := internal.Group("/")
		tenantRPC.Use(middleware.InternalTokenAuth(cfg.InternalToken, zlog))
		{
			clientHandler.RegisterRoutes(tenantRPC)
		}
	}

	zlog.Info("api listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
