package server

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "relatrix.app/crmserver/internal/middleware"

	"relatrix.app/crmserver/internal/backup"
	"relatrix.app/crmserver/internal/config"
	"relatrix.app/crmserver/internal/customer"
	"relatrix.app/crmserver/internal/database"
	"relatrix.app/crmserver/internal/demodata"
	"relatrix.app/crmserver/internal/sale"
	"relatrix.app/crmserver/internal/user"

	adminhttp "relatrix.app/crmserver/internal/http/admin"
	authhttp "relatrix.app/crmserver/internal/http/auth"
)

type Server struct {
	Echo *echo.Echo
	HTTP *http.Server
	DB   *sqlx.DB
}

func Build(cfg *config.Config) (*Server, error) {
	//
	// Validate required settings
	//
	if cfg.APIKey == "" {
		return nil, errors.New("ADMIN_API_KEY environment variable is required")
	}
	if cfg.DBDriver == database.DriverPostgres && cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required for the postgres backend")
	}

	//
	// Database
	//
	isNewDB := false
	if cfg.DBDriver == database.DriverSQLite {
		if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
			isNewDB = true
			log.Printf("Creating database '%s' (from %s setting)", cfg.DBPath, cfg.DBSource)
		} else {
			log.Printf("Opening database '%s' (from %s setting)", cfg.DBPath, cfg.DBSource)
		}
	} else {
		log.Printf("Connecting to %s backend (from %s setting)", cfg.DBDriver, cfg.DBSource)
	}

	// A connect failure here stops the process; there is no retry loop
	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(db.DB, cfg.DBDriver); err != nil {
		return nil, err
	}

	// Load demo data if requested and database is new
	if cfg.DemoMode && isNewDB {
		if err := demodata.Load(db.DB); err != nil {
			return nil, errors.New("failed to load demo data: " + err.Error())
		}
		log.Print("Demo data loaded")
	}

	//
	// Domain services
	//
	customerSvc := customer.NewService(db)
	saleSvc := sale.NewService(db)
	userSvc := user.NewService(db)
	backupSvc := backup.NewService(db, cfg.DBPath)

	//
	// Handlers
	//
	adminSvc := adminhttp.NewService(customerSvc, saleSvc, userSvc, backupSvc)
	adminHandler := adminhttp.NewHandler(adminSvc)
	authHandler := authhttp.NewHandler(userSvc)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if err := db.Ping(); err != nil {
			return c.String(http.StatusServiceUnavailable, "DB not ready")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Middleware
	e.Use(mwecho.Logger())
	e.Use(mwecho.Recover())

	// Auth (public)
	authGroup := e.Group("/auth")
	authhttp.RegisterRoutes(authGroup, authHandler)

	// Admin API (API key or session cookie)
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mwsvc.AdminAuth(cfg.APIKey))
	adminhttp.RegisterRoutes(adminGroup, adminHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo: e,
		HTTP: srv,
		DB:   db,
	}, nil
}
