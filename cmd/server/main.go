package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"bastion-server/internal/arena"
	"bastion-server/internal/server"
	"bastion-server/internal/version"
	"bastion-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var tickRate int
	var maxPlayers int
	flag.IntVar(&tickRate, "tick-rate", 0, "Simulation ticks per second (0 for default)")
	flag.IntVar(&maxPlayers, "max-players", 0, "Maximum players per room (0 for default)")
	flag.Parse()

	logger.Log.Info("Starting Bastion Server...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := arena.NewConfig()
	if tickRate > 0 {
		cfg.TickRate = tickRate
		logger.Log.Infof("⏱  Tick rate override: %d", tickRate)
	}
	if maxPlayers > 0 {
		cfg.MaxPlayers = maxPlayers
	}

	port := os.Getenv("BASTION_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	arenaService := arena.NewService(cfg)
	arenaService.Start()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(arenaService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	arenaService.Stop()

	logger.Log.Info("Done.")
}
