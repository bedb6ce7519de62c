package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mindlyst/docs"
	"mindlyst/internal/api/middleware"
	"mindlyst/internal/config"
	"mindlyst/internal/contact"
	"mindlyst/internal/events"
	"mindlyst/internal/store"
	"mindlyst/internal/user"
	"mindlyst/internal/ws"
)

type App struct {
	config    *config.Config
	router    *gin.Engine
	publisher events.Publisher
}

func NewApp() (*App, error) {
	cfg := config.LoadConfig()

	documents, err := newDocumentStore(cfg)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		redisClient = redis.NewClient(opt)
	}

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Warn("no kafka brokers configured, contact events will be dropped")
		publisher = events.NopPublisher{}
	}

	hub := ws.NewHub()
	go hub.Run()

	userRepo := user.NewRepository(documents)
	sessionRepo := user.NewSessionRepository(documents, redisClient)
	userService := user.NewService(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	userHandler := user.NewHandler(userService)

	contactRepo := contact.NewContactRepository(documents)
	requestRepo := contact.NewRequestRepository(documents)
	contactService := contact.NewService(contactRepo, requestRepo, userRepo, publisher, hub)
	contactHandler := contact.NewHandler(contactService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.LogAPI(), middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(sessionRepo, cfg.JWT.Secret))
	if redisClient != nil {
		rateLimit := middleware.NewRateLimitMiddleware(redisClient)
		protected.Use(rateLimit.RateLimit(60, time.Minute))
	}
	contactHandler.RegisterRoutes(protected)
	protected.GET("/ws", ws.ServeWS(hub))

	return &App{
		config:    cfg,
		router:    router,
		publisher: publisher,
	}, nil
}

func newDocumentStore(cfg *config.Config) (store.DocumentStore, error) {
	switch cfg.Storage.Driver {
	case "file", "":
		return store.NewFileStore(cfg.Storage.DataDir), nil
	case "minio":
		return store.NewMinioStore(
			cfg.Storage.MinioEndpoint,
			cfg.Storage.MinioAccessKey,
			cfg.Storage.MinioSecretKey,
			cfg.Storage.MinioBucket,
			cfg.Storage.MinioSecure,
		)
	case "mysql":
		return store.NewSQLStore(cfg.Storage.MySQLDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (a *App) Run() error {
	defer a.publisher.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(a.config.Server.Host, a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}
	slog.Info("listening", "addr", srv.Addr)
	return srv.ListenAndServe()
}
