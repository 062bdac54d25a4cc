package wire

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"socialhub/internal/audit"
	"socialhub/internal/auth"
	"socialhub/internal/cache"
	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/dbmongo"
	"socialhub/internal/dbmysql"
	"socialhub/internal/feed"
	"socialhub/internal/logger"
	"socialhub/internal/media"
	"socialhub/internal/moderation"
	"socialhub/internal/post"
	"socialhub/internal/profile"
)

// Application is everything the binaries in cmd/ serve.
type Application struct {
	Config         *config.Config
	DB             *gorm.DB
	Tokens         *common.TokenManager
	Accounts       *auth.AccountGuard
	Auth           *auth.Handler
	Profile        *profile.Handler
	Post           *post.Handler
	Feed           *feed.Handler
	Moderation     *moderation.Handler
	ModerationGRPC *moderation.GRPCServer
	Media          *media.Handler
	MediaServer    *media.HTTPServer
}

// Router mounts every HTTP handler under /api/v1 behind the shared middleware.
// Stored media is also streamed from /media/ so a single process can serve it.
func (a *Application) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(common.RequestIDMiddleware)
	router.Use(common.CORSMiddleware)
	router.Use(common.LoggingMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/media/").Handler(a.MediaServer)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware(a.Tokens))
	api.Use(common.ActiveAccountMiddleware(a.Accounts))
	api.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.Auth.RegisterRoutes(api)
	a.Profile.RegisterRoutes(api)
	a.Feed.RegisterRoutes(api)
	a.Post.RegisterRoutes(api)
	a.Moderation.RegisterRoutes(api)
	a.Media.RegisterRoutes(api)
	return router
}

func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		common.WriteError(w, r, common.ErrUnavailable)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "socialhub"})
}

// ProvideDatabase opens the SQL store and closes it on cleanup.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

// ProvideStatsCache uses Redis when REDIS_HOST is set and the in-process LRU
// otherwise, or when Redis cannot be reached.
func ProvideStatsCache(cfg *config.Config) (cache.StatsCache, func()) {
	if cfg.Redis.Host != "" {
		client, err := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password)
		if err == nil {
			return cache.NewRedisCache(client, cfg.Cache.StatsTTL), func() { client.Close() }
		}
		logger.Log.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
	}
	return cache.NewMemoryCache(cfg.Cache.MemorySize, cfg.Cache.StatsTTL), func() {}
}

// ProvideAuditManager subscribes the database, log and metrics observers.
func ProvideAuditManager(logs audit.LogRepository) *audit.Manager {
	return audit.NewManager(
		audit.NewDatabaseObserver(logs),
		audit.NewLoggerObserver(),
		audit.NewMetricsObserver(),
	)
}

// ProvideMediaStore connects to GridFS. It returns a nil store when MongoDB is
// disabled or unreachable, and the media endpoints then answer 503.
func ProvideMediaStore(cfg *config.Config) (media.Store, func()) {
	if !cfg.MongoDB.Enabled {
		logger.Log.Info("MongoDB disabled, media uploads are unavailable")
		return nil, func() {}
	}
	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		logger.Log.Error("MongoDB unavailable, media uploads are disabled", zap.Error(err))
		return nil, func() {}
	}
	return dbmongo.NewMediaStorage(client), func() { client.Close(context.Background()) }
}

func ProvideMediaHandler(store media.Store, cfg *config.Config) *media.Handler {
	return media.NewHandler(store, cfg.Server.MediaBaseURL)
}
