package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nhle/task-tracker/internal/app"
	"github.com/nhle/task-tracker/internal/logging"
	"github.com/nhle/task-tracker/internal/model"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the configuration file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(*cfg)
	log := logging.Logger

	session, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := session.Run(); err != nil {
		log.WithError(err).Error("session ended with error")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
