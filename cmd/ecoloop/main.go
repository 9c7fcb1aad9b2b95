package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"ecoloop/internal/config"
	"ecoloop/internal/http/handlers"
	applog "ecoloop/internal/log"
	"ecoloop/internal/repos"
	"ecoloop/internal/services"
	"ecoloop/web"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	storage, err := openStorage(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: handlers.ErrorHandler,
		// values read from a request outlive it in the wizard and inbox registries
		Immutable: true,
		// five photos of up to 5 MiB each, plus form fields
		BodyLimit: 26 << 20,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests")
		},
	}))
	app.Use(handlers.CSRF(cfg.CookieSecure))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(cfg, storage)
	deps.Mount(app)

	log.Printf("[http] listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// openStorage picks the session storage backend.
func openStorage(cfg config.Config) (handlers.StorageFunc, error) {
	switch cfg.StorageBackend {
	case "redis":
		r := repos.NewRedisStorageRepo(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			return nil, err
		}
		log.Printf("[storage] redis %s db=%d", cfg.RedisAddr, cfg.RedisDB)
		return func(sid string) services.Storage { return r.For(sid) }, nil
	default:
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		log.Printf("[storage] sqlite %s", cfg.DBDSN)
		r := repos.NewStorageRepo(db)
		return func(sid string) services.Storage { return r.For(sid) }, nil
	}
}
