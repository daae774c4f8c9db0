package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/roi-atlas/pkg/handlers/calculator"
	roimiddleware "github.com/de-tools/roi-atlas/pkg/server/middleware"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Scenarios  scenario.Registry
	Deliveries email.Controller
	Formatter  format.Formatter
	Layout     report.Layout
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	calcHandler := handlers.NewHandler(
		config.Dependencies.Scenarios,
		config.Dependencies.Deliveries,
		config.Dependencies.Formatter,
		config.Dependencies.Layout,
	)

	router := chi.NewRouter()

	router.Use(roimiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", calcHandler.GetDefaults)
		r.Post("/calculations", calcHandler.Calculate)
		r.Get("/scenarios", calcHandler.ListScenarios)
		r.Get("/scenarios/{name}/calculation", calcHandler.CalculateScenario)
		r.Post("/reports", calcHandler.ExportReport)
		r.Post("/deliveries", calcHandler.StartDelivery)
		r.Get("/deliveries/{id}", calcHandler.GetDelivery)
		r.Delete("/deliveries/{id}", calcHandler.CancelDelivery)
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
