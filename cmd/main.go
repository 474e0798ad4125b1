package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/hotel-management/config"
	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	"github.com/oksasatya/hotel-management/internal/infrastructure/events"
	pginfra "github.com/oksasatya/hotel-management/internal/infrastructure/postgres"
	"github.com/oksasatya/hotel-management/internal/infrastructure/search"
	"github.com/oksasatya/hotel-management/internal/infrastructure/storage"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/internal/router"
	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/navigation"
	"github.com/oksasatya/hotel-management/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis: sessions, one-time tokens, checkout sessions, rate limits, notification fan-out
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	bus := events.NewRedisEventBus(rdb, logger)
	defer func() { _ = bus.Close() }()

	// Object storage for room images, avatars and backups
	store, closeStore, err := newObjectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init object storage: %v", err)
	}
	defer closeStore()

	// Elasticsearch (optional): without a cluster search falls back to SQL filters
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
		es = nil
	}

	// RabbitMQ (optional): email jobs for cmd/email_worker
	var queue provider.EmailQueue
	if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Warn("email queue disabled")
	} else {
		defer pub.Close()
		queue = pub
	}

	nav, err := loadNavigation(cfg.NavRoutesFile)
	if err != nil {
		log.Fatalf("failed to load navigation routes: %v", err)
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetSQLX(pginfra.NewSQLX(pool))
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetBus(bus)
	container.SetObjectStore(store)
	container.SetSearch(search.NewElasticIndex(es, cfg.ESUsersIndex, cfg.ESRoomsIndex, logger))
	container.SetEmailQueue(queue)
	container.SetNavigation(nav)

	// Gin engine and global middleware
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList(), cfg.TrustedPlatform); err != nil {
		log.Fatalf("invalid proxy config: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r, logger)
	reg.Use(middleware.RateLimit(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	if err := router.InitModules(reg); err != nil {
		log.Fatalf("failed to init modules: %v", err)
	}
	if err := reg.RegisterAll(); err != nil {
		log.Fatalf("failed to mount routes: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// newObjectStore picks the storage backend named by STORAGE_DRIVER. A
// missing bucket leaves uploads and backups disabled.
func newObjectStore(ctx context.Context, cfg *config.Config) (provider.ObjectStore, func(), error) {
	switch cfg.StorageDriver {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, func() {}, nil
		}
		s, err := storage.NewS3Store(ctx, storage.S3Config{Bucket: cfg.S3Bucket, Region: cfg.S3Region, Endpoint: cfg.S3Endpoint})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "gcs", "":
		if cfg.GCSBucket == "" {
			return nil, func() {}, nil
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGCSStore(client, cfg.GCSBucket), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func loadNavigation(path string) (*navigation.Manager, error) {
	if path == "" {
		return navigation.Default(), nil
	}
	routes, err := navigation.LoadRoutesFile(path)
	if err != nil {
		return nil, err
	}
	return navigation.NewManager(routes), nil
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
