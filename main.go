package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ARKTEEK/purrislav/announce"
	"github.com/ARKTEEK/purrislav/bot"
	"github.com/ARKTEEK/purrislav/config"
	"github.com/ARKTEEK/purrislav/dal"
	"github.com/ARKTEEK/purrislav/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	store, err := dal.Open(cfg.DBPath, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	b, err := bot.New(cfg.BotToken, cfg.GuildID, store, log)
	if err != nil {
		log.Fatal("failed to start bot", zap.Error(err))
	}
	defer b.Shutdown(cfg.GuildID)

	engine := announce.New(store, b, log)

	scheduler, err := announce.StartScheduler(cfg.AnnounceCron, engine, log)
	if err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	log.Info("running, press ctrl+c to exit")
	<-stop
}
