package checkout

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alovak/payment-api/internal/middleware"
	"github.com/alovak/payment-api/internal/twocheckout"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

// App is the main application, it wires the checkout API to the payment
// gateway and runs the HTTP server.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config

	// gateway replaces the 2Checkout client when set; used by tests.
	gateway Authorizer
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "payment-api"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

// WithGateway makes the app call gateway instead of 2Checkout.
func (a *App) WithGateway(gateway Authorizer) *App {
	a.gateway = gateway
	return a
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	gateway := a.gateway
	if gateway == nil {
		gateway = twocheckout.NewClient(twocheckout.Credentials{
			SellerID:   a.config.Gateway.SellerID,
			PrivateKey: a.config.Gateway.PrivateKey,
			Sandbox:    a.config.Gateway.Sandbox,
			BaseURL:    a.config.Gateway.BaseURL,
		}, &http.Client{Timeout: a.config.Gateway.Timeout})
		a.logger.Info("using 2checkout gateway",
			slog.String("seller_id", a.config.Gateway.SellerID),
			slog.Bool("sandbox", a.config.Gateway.Sandbox),
		)
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.NewStructuredLogger(a.logger))
	router.Use(chimw.Recoverer)

	api := NewAPI(NewService(a.logger, gateway, metrics))
	api.AppendRoutes(router)

	// Health endpoints; there are no backing stores to check for readiness.
	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	if a.config.MetricsEnabled {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.srv.Shutdown(ctx); err != nil {
		a.logger.Error("shutting down http server", "err", err)
	}

	a.wg.Wait()

	a.logger.Info("app stopped")
}
