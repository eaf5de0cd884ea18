package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kurirapp/courier-api/internal/config"
	"github.com/kurirapp/courier-api/internal/handlers"
	"github.com/kurirapp/courier-api/internal/repository"
	"github.com/kurirapp/courier-api/internal/services"
	"github.com/kurirapp/courier-api/internal/storage"
	"github.com/kurirapp/courier-api/internal/token"
	xhttp "github.com/kurirapp/courier-api/pkg/http"
	"github.com/kurirapp/courier-api/pkg/logger"
	"github.com/kurirapp/courier-api/pkg/pg"
	"github.com/kurirapp/courier-api/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(prom.MetricsMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	pgConf := pg.Config{
		User:     config.Get().PostgresUser,
		Host:     config.Get().PostgresHost,
		Port:     config.Get().PostgresPort,
		Password: config.Get().PostgresPassword,
		Database: config.Get().PostgresDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.Create(pgConf, pgDebug)
	if err != nil {
		logger.Fatal(err, "stage", "pg-connect")
	}

	if dir := config.Get().MigrationsDir; dir != "" {
		if err := pg.Migrate(pgConf, dir); err != nil {
			logger.Fatal(err, "stage", "pg-migrate")
		}
	}

	photoStore, err := storage.NewLocal(config.Get().UploadDir, config.Get().UploadPublicPath)
	if err != nil {
		logger.Fatal(err, "stage", "storage")
	}

	tokens := token.NewManager(config.Get().JWTSecret, config.Get().TokenTTL)

	courierRepo := repository.NewCourierRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// services
	authService := services.NewAuthService(courierRepo, tokens)
	reportService := services.NewReportService(reportRepo, photoStore)
	healthService := services.NewHealthService()

	// handlers
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api")
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterReportRoutes(g, reportHandler, tokens)
	handlers.RegisterHealthRoutes(g, healthHandler)

	// uploaded photos are served straight from the blob directory
	s.Router.ServeFiles(config.Get().UploadPublicPath+"/{filepath:*}", photoStore.Dir())

	if addr := config.Get().MetricsAddr; addr != "" {
		if err := prom.Create(config.Get().AppName, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
		}
		go prom.ListenAndServer(addr, config.Get().MetricsURI)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
