// Package bootstrap assembles the application from its configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"employee-portal/config"
	"employee-portal/internal/database"
	"employee-portal/internal/geo"
	"employee-portal/internal/handler"
	"employee-portal/internal/kv"
	"employee-portal/internal/mailer"
	"employee-portal/internal/middleware"
	"employee-portal/internal/repository"
	"employee-portal/internal/repository/memory"
	"employee-portal/internal/routes"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Usecases struct {
	Sessions      *usecase.SessionUsecase
	Attendance    *usecase.AttendanceUsecase
	Leaves        *usecase.LeaveUsecase
	Inventory     *usecase.InventoryUsecase
	Notifications *usecase.NotificationUsecase
	Holidays      *usecase.HolidayUsecase
	Blog          *usecase.BlogUsecase
}

// Container owns everything built by New. Close releases the external
// connections.
type Container struct {
	Config   *config.Config
	Repos    *repository.Set
	Usecases Usecases
	App      *fiber.App

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	repos, err := c.repositories(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Repos = repos

	sessions, err := c.sessionStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Usecases = NewUsecases(cfg, repos, sessions, c.newMailer())

	app, err := NewApp(cfg, c.Usecases)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.App = app
	return c, nil
}

func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

func (c *Container) repositories(ctx context.Context) (*repository.Set, error) {
	switch c.Config.StorageDriver {
	case "memory":
		set := memory.NewSet()
		if err := database.SeedAll(ctx, set, database.SeedOptions{Seed: time.Now().UnixNano()}); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		return set, nil
	case "mysql", "postgres":
		db, err := config.ConnectDB(c.Config)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		set := repository.NewGormSet(db)
		if c.Config.SeedOnStart {
			if err := database.SeedAll(ctx, set, database.SeedOptions{Seed: time.Now().UnixNano()}); err != nil {
				return nil, fmt.Errorf("seed database: %w", err)
			}
		}
		return set, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Config.StorageDriver)
	}
}

func (c *Container) sessionStore(ctx context.Context) (kv.Store, error) {
	switch c.Config.SessionDriver {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "redis":
		client, err := config.NewRedisClient(ctx, c.Config.Redis)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		return kv.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", c.Config.SessionDriver)
	}
}

func (c *Container) newMailer() mailer.Mailer {
	smtp := c.Config.SMTP
	if !smtp.Enabled() {
		log.Println("[WARN] SMTP_HOST is not set, e-mail notifications are not delivered")
		return mailer.Nop{}
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
	})
}

func NewUsecases(cfg *config.Config, repos *repository.Set, sessions kv.Store, m mailer.Mailer) Usecases {
	opts := usecase.Options{Latency: cfg.SimulatedLatency}
	notifications := usecase.NewNotificationUsecase(repos.Notifications, m, opts)

	return Usecases{
		Sessions: usecase.NewSessionUsecase(repos.Users, sessions, usecase.SessionConfig{
			Secret: cfg.JWTSecret,
			TTL:    cfg.SessionTTL,
		}, opts),
		Attendance: usecase.NewAttendanceUsecase(repos.Attendance, repos.Users, usecase.AttendanceConfig{
			GeoTimeout: cfg.GeolocationTimeout,
			Fence: geo.Fence{
				Center:       geo.Location{Latitude: cfg.OfficeLatitude, Longitude: cfg.OfficeLongitude},
				RadiusMeters: cfg.OfficeRadiusMeters,
			},
			RequiredHours: cfg.RequiredHours,
		}, opts),
		Leaves:        usecase.NewLeaveUsecase(repos.Leaves, notifications, opts),
		Inventory:     usecase.NewInventoryUsecase(repos.Inventory, notifications, opts),
		Notifications: notifications,
		Holidays:      usecase.NewHolidayUsecase(repos.Holidays, opts),
		Blog:          usecase.NewBlogUsecase(repos.Blog, opts),
	}
}

// NewApp builds the Fiber application and registers every route.
func NewApp(cfg *config.Config, u Usecases) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName: "employee-portal",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		},
	})

	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	limit, err := middleware.RateLimit(cfg.LoginRateLimit)
	if err != nil {
		return nil, err
	}
	auth := middleware.Auth(u.Sessions)

	routes.SetupAuthRoutes(app, handler.NewAuthHandler(u.Sessions), auth, limit)
	routes.SetupAttendanceRoutes(app, handler.NewAttendanceHandler(u.Attendance), auth)
	routes.SetupLeaveRoutes(app, handler.NewLeaveHandler(u.Leaves), auth)
	routes.SetupInventoryRoutes(app, handler.NewInventoryHandler(u.Inventory), auth)
	routes.SetupNotificationRoutes(app, handler.NewNotificationHandler(u.Notifications), auth)
	routes.SetupHolidayRoutes(app, handler.NewHolidayHandler(u.Holidays), auth)
	routes.SetupBlogRoutes(app, handler.NewBlogHandler(u.Blog), auth)
	routes.SetupDashboardRoutes(app, handler.NewDashboardHandler(u.Attendance, u.Leaves, u.Inventory, u.Notifications), auth)
	routes.SetupReportRoutes(app, handler.NewReportHandler(u.Attendance, u.Inventory), auth)

	return app, nil
}
