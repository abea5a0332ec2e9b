package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskhub/api/internal/auth"
	"github.com/taskhub/api/internal/config"
	"github.com/taskhub/api/internal/domain/user"
	"github.com/taskhub/api/internal/http/handlers"
	"github.com/taskhub/api/internal/http/middlewares"
	"github.com/taskhub/api/internal/observability"
	"github.com/taskhub/api/internal/repo/postgres"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// UsersStore is everything the router's handlers and auth middleware need
// from the user store.
type UsersStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

// NewRouter wires the postgres-backed service.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	usersRepo := postgres.NewUsersRepo(pool, prom)
	tasksRepo := postgres.NewTasksRepo(pool, prom)

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	return NewRouterWithStores(log, cfg, usersRepo, tasksRepo, ping, prom, reg)
}

// NewRouterWithStores wires the routes over any store implementation;
// tests use it with the memory repos. A nil prom/registry gets a fresh one.
func NewRouterWithStores(log *slog.Logger, cfg config.Config, users UsersStore, tasks handlers.TasksStore, ping func() error, prom *observability.Prom, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	if prom == nil {
		prom = observability.NewProm(reg)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("taskhub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authMW := middlewares.NewAuthMiddleware(jwtManager, users)

	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.GET("/api-docs", handlers.SwaggerUI)
	r.GET("/api-docs/openapi.json", handlers.OpenAPISpec)

	usersHandler := handlers.NewUsersHandler(users, users, jwtManager, cfg.BcryptCost)
	tasksHandler := handlers.NewTasksHandler(tasks)

	api := r.Group("/api")

	userRoutes := api.Group("/users")
	userRoutes.Use(limiter.Middleware(middlewares.KeyByIP))
	userRoutes.POST("/register", usersHandler.Register)
	userRoutes.POST("/login", usersHandler.Login)

	taskRoutes := api.Group("/tasks")
	taskRoutes.Use(authMW.RequireAuth())
	taskRoutes.Use(limiter.Middleware(middlewares.KeyByUserOrIP))
	taskRoutes.GET("", tasksHandler.ListTasks)
	taskRoutes.POST("", tasksHandler.CreateTask)
	taskRoutes.PUT("/:id", tasksHandler.UpdateTask)
	taskRoutes.DELETE("/:id", tasksHandler.DeleteTask)

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Not found")
	})

	return r
}
