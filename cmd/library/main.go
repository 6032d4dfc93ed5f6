package main

import (
	"github.com/project/lending/config"
	"github.com/project/lending/internal/app"
	"github.com/project/lending/pkg/logger"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()

	if err != nil {
		log.Fatalf("can not get application config: %s", err)
	}

	zapLogger, err := logger.New(cfg.Log.File)

	if err != nil {
		log.Fatalf("can not initialize logger: %s", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	app.Run(zapLogger, cfg)
}
