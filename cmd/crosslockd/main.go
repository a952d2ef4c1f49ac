package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crosslock/crosslock/app"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	log := logrus.New()
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	a := app.New(app.Config{
		ChainID: cfg.ChainID,
		Logger:  log,
	})
	if cfg.GenesisAdmin != "" {
		genesis := []byte(`{"treasury": {"admin": "` + cfg.GenesisAdmin + `"}}`)
		if err := a.InitGenesis(genesis); err != nil {
			log.WithError(err).Fatal("init genesis")
		}
	}

	server := NewServer(a, cfg.StartHeight, log)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.ListenAddr,
			"chain_id": cfg.ChainID,
		}).Info("serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}
