package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/config"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/navigation"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	sqlxDB      *sqlx.DB
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	objectStore provider.ObjectStore
	searchIndex provider.SearchIndex
	emailQueue  provider.EmailQueue
	bus         provider.NotificationBus

	nav *navigation.Manager
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetSQLX(db *sqlx.DB)          { sqlxDB = db }
func GetSQLX() *sqlx.DB            { return sqlxDB }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

// Optional integrations stay nil interfaces when not configured; services
// check for nil before using them.
func SetObjectStore(s provider.ObjectStore) { objectStore = s }
func GetObjectStore() provider.ObjectStore  { return objectStore }
func SetSearch(s provider.SearchIndex)      { searchIndex = s }
func GetSearch() provider.SearchIndex       { return searchIndex }
func SetEmailQueue(q provider.EmailQueue)   { emailQueue = q }
func GetEmailQueue() provider.EmailQueue    { return emailQueue }
func SetBus(b provider.NotificationBus)     { bus = b }
func GetBus() provider.NotificationBus      { return bus }
func SetNavigation(m *navigation.Manager)   { nav = m }
func GetNavigation() *navigation.Manager {
	if nav != nil {
		return nav
	}
	return navigation.Default()
}
