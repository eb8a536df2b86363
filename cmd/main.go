package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/comfyui-plus/backend/internal/api/http/httpctx"
	"github.com/comfyui-plus/backend/internal/api/http/router"
	"github.com/comfyui-plus/backend/internal/config"
	"github.com/comfyui-plus/backend/internal/hasher"
	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
	"github.com/comfyui-plus/backend/internal/repository/postgres"
	"github.com/comfyui-plus/backend/internal/server"
	"github.com/comfyui-plus/backend/internal/service"
	"github.com/comfyui-plus/backend/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	passwordHasher := hasher.New(hasher.Params{
		Time:        cfg.Argon2.Time,
		MemoryKiB:   cfg.Argon2.MemoryKiB,
		Parallelism: cfg.Argon2.Parallelism,
	})

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.ExpiresIn)
	if err != nil {
		logger.Fatal("invalid jwt configuration", "error", err)
	}

	authService := service.NewAuth(userRepo, passwordHasher, tokenManager, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, tokenManager, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
