package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/divvyup/divvyup/internal/config"
	"github.com/divvyup/divvyup/internal/logpipe"
	"github.com/divvyup/divvyup/internal/metrics"
	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	m := metrics.New(prometheus.DefaultRegisterer)

	router := mux.NewRouter()
	router.Use(middleware.Logging(), middleware.Metrics(m))

	service.NewSettlementService().RegisterRoutes(router)

	pipeline := logpipe.New(logpipe.NewHTTPFetcher(cfg.FetchTimeout))
	service.NewLogReportService(pipeline).RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// h2c lets clients speak HTTP/2 without TLS behind the ingress.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "fetch_timeout", cfg.FetchTimeout)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
