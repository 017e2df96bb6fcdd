package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dasakash26/Banking-Simulation/configs"
	"github.com/dasakash26/Banking-Simulation/internal/handlers"
	"github.com/dasakash26/Banking-Simulation/internal/ledger"
	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/dasakash26/Banking-Simulation/internal/routes"
	"github.com/dasakash26/Banking-Simulation/internal/seed"
	"github.com/dasakash26/Banking-Simulation/internal/simulation"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()
	store.NewDB()
	store.DBMigrate()
	seed.Run()

	st := store.NewGormStore(store.DB)
	svc := ledger.NewService(st, logger.Log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := simulation.NewEngine(st, svc, simulationConfig(), rng, logger.Log)
	handlers.Init(st, svc, eng)

	router := routes.NewRoutes()

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := store.DB.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}

// simulationConfig overlays configured knobs on the engine defaults.
func simulationConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	app := configs.AppConfig.Simulation
	if app.ExpenseMinPercent > 0 {
		cfg.ExpenseMinPercent = app.ExpenseMinPercent
	}
	if app.ExpenseMaxPercent > 0 {
		cfg.ExpenseMaxPercent = app.ExpenseMaxPercent
	}
	if app.TransferChance > 0 {
		cfg.TransferChance = app.TransferChance
	}
	if app.TransferMin > 0 {
		cfg.TransferMin = app.TransferMin
	}
	if app.TransferMax > 0 {
		cfg.TransferMax = app.TransferMax
	}
	if app.EmergencyFloor > 0 {
		cfg.EmergencyFloor = app.EmergencyFloor
	}
	if app.EmergencyMin > 0 {
		cfg.EmergencyMin = app.EmergencyMin
	}
	if app.EmergencyMax > 0 {
		cfg.EmergencyMax = app.EmergencyMax
	}
	return cfg
}
