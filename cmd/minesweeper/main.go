package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/session"
)

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.Fatal("invalid launch options: ", err)
	}

	log, err := logging.New(os.Stderr, logging.Options{
		Development: cfg.Development,
		File:        cfg.LogFile,
	})
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}

	log.Infof("starting up, development = %t", cfg.Development)
	log.WithFields(cfg.Fields()).Debug("config")

	s, err := session.New(cfg.Settings, log)
	if err != nil {
		log.Fatal("unable to start a game: ", err)
	}

	if err := app.New(log, cfg, s).Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
