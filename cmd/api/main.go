package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/menu-admin-api/docs"
	"github.com/jhoicas/menu-admin-api/internal/application/audit"
	"github.com/jhoicas/menu-admin-api/internal/application/auth"
	"github.com/jhoicas/menu-admin-api/internal/application/orders"
	"github.com/jhoicas/menu-admin-api/internal/application/superadmin"
	"github.com/jhoicas/menu-admin-api/internal/application/tenancy"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/infrastructure/cache"
	"github.com/jhoicas/menu-admin-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/menu-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/menu-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/menu-admin-api/internal/interfaces/http"
	"github.com/jhoicas/menu-admin-api/pkg/config"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	health := map[string]httpRouter.HealthCheck{
		"postgres": pool.Ping,
	}

	// Caché de tenants opcional: sin REDIS_ADDR se resuelve siempre contra la base.
	var tenantCache tenancy.Cache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se usará solo PostgreSQL")
		}
		tenantCache = cache.NewRedisTenantCache(rdb, cfg.Redis.TTL)
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	prom := metrics.New(cfg.Metrics.Prefix, nil)
	loc := cfg.Orders.Location()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	dishRepo := postgres.NewDishRepository(pool)
	subtagRepo := postgres.NewSubtagRepository(pool)
	logRepo := postgres.NewLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditSvc := audit.NewService(logRepo, log)
	auditSvc.SetWriteTimeout(cfg.Audit.WriteTimeout)
	auditSvc.Start(cfg.Audit.QueueSize)
	resolver := tenancy.NewResolver(tenantRepo, tenantCache, log)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auditSvc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orderUC := orders.NewOrderUseCase(orderRepo, auditSvc, prom, infrapdf.NewTicketGenerator(loc), log, orders.Config{
		Location:   loc,
		MaxRetries: cfg.Orders.MaxRetries,
		RetryBase:  time.Duration(cfg.Orders.RetryBaseMs) * time.Millisecond,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)
	dishUC := usecase.NewDishUseCase(dishRepo, categoryRepo, subtagRepo, txRunner)
	subtagUC := usecase.NewSubtagUseCase(subtagRepo, txRunner)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, resolver, auditSvc)
	userUC := usecase.NewUserUseCase(userRepo, tenantRepo, orderRepo)
	tenantAdminUC := superadmin.NewTenantAdminUseCase(tenantRepo, userRepo, txRunner, resolver, auditSvc, superadmin.Config{
		BaseDomain: cfg.Tenant.BaseDomain,
		Location:   loc,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Component("http"), prom))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept,
			fiber.HeaderAuthorization, httpRouter.HeaderTenantDomain,
		}, ","),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Menu Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:         httpRouter.NewAuthHandler(authUC, log),
		Tenants:      httpRouter.NewTenantHandler(resolver, tenantUC, log),
		Orders:       httpRouter.NewOrderHandler(orderUC, log),
		Catalog:      httpRouter.NewCatalogHandler(categoryUC, dishUC, subtagUC, log),
		SuperAdmin:   httpRouter.NewSuperAdminHandler(tenantAdminUC, auditSvc, log),
		Users:        httpRouter.NewUserHandler(userUC, log),
		Tenancy:      httpRouter.NewTenantMiddleware(resolver, log),
		JWTSecret:    cfg.JWT.Secret,
		QueryTimeout: cfg.DB.QueryTimeout,
		Health:       health,
		Metrics:      prom.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := auditSvc.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cola de auditoría sin vaciar")
	}

	log.Info().Msg("aplicación detenida")
}
