package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"atelier/internal/config"
	"atelier/internal/server"
)

var (
	port         = flag.Int("port", 0, "HTTP port (config.toml wins when it sets one explicitly)")
	devMode      = flag.Bool("dev", false, "development mode")
	dataDir      = flag.String("dataDir", "", "data directory (overrides config)")
	documentsDir = flag.String("documentsDir", "", "artisan document folders root (overrides config)")
)

func main() {
	flag.Parse()

	log := newLogger(*devMode)

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// flags override the file, except an explicitly configured port
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *documentsDir != "" {
		cfg.Data.DocumentsDir = *documentsDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("data directory creation failed")
	} else {
		log.Info().Str("dir", dir).Msg("data directory ready")
	}

	srv, err := server.NewServer(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("listening")
		if err := srv.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := srv.Close(); err != nil {
		log.Warn().Err(err).Msg("database close failed")
	}
}

// newLogger writes human-readable output in dev mode and JSON otherwise.
func newLogger(dev bool) zerolog.Logger {
	var writer io.Writer = os.Stderr
	level := zerolog.InfoLevel
	if dev {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		level = zerolog.DebugLevel
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
