package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kardianos/service"

	"github.com/sanya-cherniy/l2.11/internal/app"
	"github.com/sanya-cherniy/l2.11/internal/config"
	"github.com/sanya-cherniy/l2.11/internal/logging"
	"github.com/sanya-cherniy/l2.11/internal/storage/memory"
)

func main() {
	configPath := flag.String("config", "config", "config file; without extension .toml, .yaml and .yml are tried")
	control := flag.String("service", "", "service action: "+fmt.Sprint(service.ControlAction))
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.Source == "" {
		logger.Warn("config file not found, using defaults", "path", *configPath)
	} else {
		logger.Info("loaded config", "path", cfg.Source)
	}

	absConfig, err := filepath.Abs(*configPath)
	if err != nil {
		absConfig = *configPath
	}
	svcConfig := &service.Config{
		Name:        "calendar-api",
		DisplayName: "Calendar API",
		Description: "In-memory calendar events HTTP service",
		Arguments:   []string{"-config", absConfig},
	}

	prg := newProgram(cfg, logger, app.NewCalendarService(memory.NewStore()))
	s, err := service.New(prg, svcConfig)
	if err != nil {
		logger.Error("service setup failed", "err", err)
		os.Exit(1)
	}

	if *control != "" {
		if err := service.Control(s, *control); err != nil {
			logger.Error("service control failed", "action", *control, "err", err)
			os.Exit(1)
		}
		logger.Info("service control done", "action", *control)
		return
	}

	// Interactive runs block here until SIGINT/SIGTERM.
	if err := s.Run(); err != nil {
		logger.Error("service run error", "err", err)
		os.Exit(1)
	}
}
