// Package app wires every endpoint of the API together
package app

import (
	"bitwise74/task-api/app/project"
	"bitwise74/task-api/app/root"
	"bitwise74/task-api/app/task"
	"bitwise74/task-api/app/user"
	"bitwise74/task-api/config"
	"bitwise74/task-api/db"
	"bitwise74/task-api/internal"
	"bitwise74/task-api/internal/service"
	"bitwise74/task-api/internal/store"
	"bitwise74/task-api/pkg/middleware"
	"bitwise74/task-api/pkg/security"
	"context"
	"fmt"
	"slices"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// NewRouter connects to the database, builds the handler dependencies and
// registers every route. Background jobs stop when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, *internal.Deps, error) {
	if err := makeLogger(cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	conn, err := db.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	argon := security.NewArgon()
	projects := store.NewProjects(conn)

	d := &internal.Deps{
		Config:   cfg,
		DB:       conn,
		Argon:    argon,
		Tokens:   security.NewTokenService(cfg.JWTSecret, security.TokenTTL),
		Users:    store.NewUsers(conn, argon),
		Projects: projects,
		Tasks:    store.NewTasks(conn, projects),
	}

	router := gin.New()

	router.Use(
		cors.New(corsConfig(cfg.Origins)),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	jwt := middleware.NewJWTMiddleware(d.Tokens)
	turnstile := middleware.NewTurnstileMiddleware(middleware.TurnstileConfig{
		Enabled: cfg.TurnstileEnabled,
		Secret:  cfg.TurnstileSecret,
	})
	rateLimiter := middleware.RateLimiterMiddleware(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit,
		Burst:             cfg.RateLimit * 2,
	})

	m := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(cfg.BodyLimit))
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	u := m.Group("/usuarios")
	{
		// POST /api/usuarios		-> Registers a new user and returns a JWT token
		u.POST("", turnstile, func(c *gin.Context) { user.UserRegister(c, d) })
	}

	a := m.Group("/auth")
	{
		// POST /api/auth		-> Logs in a user and returns a JWT token
		a.POST("", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/auth		-> Returns the authenticated user
		a.GET("", jwt, cachePerUser(30*time.Second), func(c *gin.Context) { user.UserFetch(c, d) })
	}

	p := m.Group("/proyectos", jwt)
	{
		// POST /api/proyectos		-> Creates a project
		p.POST("", func(c *gin.Context) { project.ProjectCreate(c, d) })

		// GET /api/proyectos		-> Lists the projects of a user
		p.GET("", func(c *gin.Context) { project.ProjectList(c, d) })

		// PUT /api/proyectos/:id	-> Renames a project
		p.PUT("/:id", func(c *gin.Context) { project.ProjectUpdate(c, d) })

		// DELETE /api/proyectos/:id	-> Deletes a project and all of its tasks
		p.DELETE("/:id", func(c *gin.Context) { project.ProjectDelete(c, d) })
	}

	t := m.Group("/tareas", jwt)
	{
		// POST /api/tareas		-> Creates a task inside a project
		t.POST("", func(c *gin.Context) { task.TaskCreate(c, d) })

		// GET /api/tareas?proyecto=	-> Lists the tasks of a project
		t.GET("", func(c *gin.Context) { task.TaskList(c, d) })

		// PUT /api/tareas/:id		-> Updates a task
		t.PUT("/:id", func(c *gin.Context) { task.TaskUpdate(c, d) })

		// DELETE /api/tareas/:id	-> Deletes a task
		t.DELETE("/:id", func(c *gin.Context) { task.TaskDelete(c, d) })
	}

	// Project deletion isn't transactional, sweep up whatever it left behind
	if cfg.CleanupInterval > 0 {
		service.TaskCleanup(ctx, cfg.CleanupInterval, d.Tasks)
	}

	return router, d, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.TokenHeader, middleware.TurnstileHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// cachePerUser caches successful responses under the ID of the
// authenticated user, must run after the JWT middleware
func cachePerUser(ttl time.Duration) gin.HandlerFunc {
	memStore := perRequestHeaderStore{persist.NewMemoryStore(time.Minute)}

	return cache.Cache(memStore, ttl, cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		userID := c.GetString("userID")
		if userID == "" {
			return false, cache.Strategy{}
		}

		return true, cache.Strategy{
			CacheKey: c.Request.URL.Path + ":" + userID,
		}
	}))
}

// perRequestHeaderStore drops headers that belong to a single request
// before a response is stored, so a cache hit keeps its own request ID
type perRequestHeaderStore struct {
	persist.CacheStore
}

func (s perRequestHeaderStore) Set(key string, value any, expire time.Duration) error {
	if r, ok := value.(*cache.ResponseCache); ok && r != nil {
		stored := *r
		stored.Header = r.Header.Clone()
		stored.Header.Del(middleware.RequestIDHeader)
		value = &stored
	}

	return s.CacheStore.Set(key, value, expire)
}

func makeLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q, %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger, %w", err)
	}

	zap.ReplaceGlobals(log)
	return nil
}
