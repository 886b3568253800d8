package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/made-to-scale/scaleops/internal/api_server"
	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/events"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
	"github.com/made-to-scale/scaleops/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scaleops api",
	RunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return err
			}
		}

		cfg, err := config.New()
		if err != nil {
			return err
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")
		zap.S().Infof("Using config: %s", cfg)

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalf("running initial migration: %v", err)
		}

		manifests, err := progress.LoadManifests(cfg.Service.Progress.ManifestFile)
		if err != nil {
			zap.S().Fatalf("loading progress manifests: %v", err)
		}

		tracker := progress.NewTracker(
			progress.NewStoreReader(s),
			manifests,
			cfg.Service.Progress.PollInterval,
			cfg.Service.Progress.MaxBackoff,
		)

		pipeline := webhooks.NewClient(cfg)

		writer, err := newEventWriter(cfg)
		if err != nil {
			zap.S().Fatalf("creating event writer: %v", err)
		}
		producerOpts := []events.ProducerOptions{}
		if cfg.Service.Kafka.Topic != "" {
			producerOpts = append(producerOpts, events.WithOutputTopic(cfg.Service.Kafka.Topic))
		}
		producer := events.NewEventProducer(writer, producerOpts...)
		defer func() { _ = producer.Close() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalf("creating listener: %s", err)
			}

			server := apiserver.New(cfg, s, listener, tracker, pipeline, producer)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalf("Error running server: %s", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalf("creating listener: %s", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalf("Error running metrics server: %s", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newEventWriter(cfg *config.Config) (events.Writer, error) {
	if len(cfg.Service.Kafka.Brokers) == 0 {
		return &events.StdoutWriter{}, nil
	}
	return events.NewKafkaWriter(cfg.Service.Kafka.Brokers, cfg.Service.Kafka.ClientID)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
