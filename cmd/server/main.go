package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-state/internal/api"
	"flight-state/internal/config"
	"flight-state/internal/env"
	"flight-state/internal/influx"
	"flight-state/internal/logging"
	"flight-state/internal/sim"
	"flight-state/internal/simvar"
	"flight-state/internal/storage"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var (
	configPath = flag.String("config", "", "Path to a JSON config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := simvar.NewStore()
	host := env.NewHost(store, scenario(cfg.Scenario)...)

	var sinks []sim.Sink
	var closers []func() error
	var history api.History

	if cfg.Influx.Enabled {
		sink, err := influx.New(ctx, influx.Config{
			URL:        cfg.Influx.URL,
			Token:      cfg.Influx.Token,
			Org:        cfg.Influx.Org,
			Bucket:     cfg.Influx.Bucket,
			BackupPath: cfg.Influx.BackupPath,
		}, log)
		if err != nil {
			return fmt.Errorf("influx: %w", err)
		}
		sinks = append(sinks, sink)
		closers = append(closers, sink.Close)
	}

	if cfg.Storage.SQLite.Enabled {
		rec, err := storage.Open(cfg.Storage.SQLite.Path, cfg.Storage.SQLite.BatchSize, log)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		sinks = append(sinks, rec)
		closers = append(closers, rec.Close)
		history = rec
	}

	// Create simulation engine
	engine, err := sim.New(sim.Config{
		TickHz:   cfg.TickHz,
		MaxStep:  cfg.MaxStep,
		Source:   host,
		Registry: store,
		Sinks:    sinks,
		Logger:   log,
		Meter:    otel.Meter("flight-state"),
	})
	if err != nil {
		return err
	}

	server := api.NewServer(engine, api.Options{
		StreamMaxHz: cfg.Stream.MaxHz,
		Logger:      log,
		History:     history,
	})
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: server.Handler(),
	}

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("simulation error")
		}
	}()

	go func() {
		log.Info().Int("port", cfg.HTTP.Port).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	cancel()
	<-engineDone

	for _, c := range closers {
		if err := c(); err != nil {
			log.Error().Err(err).Msg("closing sink failed")
		}
	}

	log.Info().Msg("shutdown complete")
	return nil
}

// scenario builds the synthetic host effects in dependency order.
func scenario(s config.ScenarioConfig) []env.Environment {
	wind := env.FromSpeedAndDir(s.Wind.Speed, s.Wind.FromDeg)
	wind.GustAmplitude = s.Wind.GustAmplitude
	wind.GustPeriod = s.Wind.GustPeriod

	aircraft := &env.Aircraft{
		PitchDeg:      s.Aircraft.PitchDeg,
		BankDeg:       s.Aircraft.BankDeg,
		HeadingDeg:    s.Aircraft.HeadingDeg,
		TurnRateDeg:   s.Aircraft.TurnRateDeg,
		TrueAirspeed:  s.Aircraft.TrueAirspeed,
		Acceleration:  s.Aircraft.Acceleration,
		AltitudeM:     s.Aircraft.AltitudeM,
		VerticalSpeed: s.Aircraft.VerticalSpeed,
	}

	terrain := env.Terrain{
		ElevationM:    s.Terrain.ElevationM,
		SafetyMarginM: s.Terrain.SafetyMarginM,
	}

	return []env.Environment{
		wind,
		aircraft,
		terrain,
		env.Atmosphere{TemperatureOffsetK: s.TemperatureOffsetK},
	}
}
