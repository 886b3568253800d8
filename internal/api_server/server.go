package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/made-to-scale/scaleops/internal/config"
	"github.com/made-to-scale/scaleops/internal/events"
	handlers "github.com/made-to-scale/scaleops/internal/handlers/v1"
	"github.com/made-to-scale/scaleops/internal/progress"
	"github.com/made-to-scale/scaleops/internal/service"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
	"github.com/made-to-scale/scaleops/pkg/log"
	"github.com/made-to-scale/scaleops/pkg/metrics"
	"github.com/made-to-scale/scaleops/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	tracker  *progress.Tracker
	pipeline *webhooks.Client
	producer *events.EventProducer
}

// New returns a new instance of the scaleops API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	tracker *progress.Tracker,
	pipeline *webhooks.Client,
	producer *events.EventProducer,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		tracker:  tracker,
		pipeline: pipeline,
		producer: producer,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CorsOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		log.Logger(zap.L(), "api"),
		chiMiddleware.Recoverer,
	)

	manifests := s.tracker.Manifests()
	h := handlers.NewHandler(
		service.NewProjectService(s.store),
		service.NewBriefService(s.store, s.pipeline, s.producer),
		service.NewAvatarService(s.store, s.pipeline),
		service.NewAnalysisService(s.store, manifests, s.tracker),
		service.NewCompetitorService(s.store, s.pipeline, s.producer),
		service.NewNarrativeService(s.store),
		service.NewAdsService(s.store, s.pipeline, s.producer),
	)
	h.Routes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
