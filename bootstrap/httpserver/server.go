// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-counter-go/jsonapi"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/scribe/log"
	"golang.org/x/time/rate"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

var LogTag = log.String("adapter", "http-server")

type httpErr struct {
	code     int
	logField *log.Field
	message  string
}

type metrics struct {
	requests      *metric.Rate
	rateLimited   *metric.Gauge
	runMethodTime *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		requests:      m.NewRate("HttpServer.Requests.Rate"),
		rateLimited:   m.NewGauge("HttpServer.RateLimited.Count"),
		runMethodTime: m.NewLatency("HttpServer.RunMethod.Time.Millis", 30*time.Second),
	}
}

type HttpServer struct {
	httpServer     *http.Server
	logger         log.Logger
	vm             services.VirtualMachine
	stateStorage   services.StateStorage
	metricRegistry metric.Registry
	config         config.HttpServerConfig
	limiter        *rate.Limiter
	metrics        *metrics

	startTime time.Time
	port      int
	closed    chan struct{}
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func NewHttpServer(cfg config.HttpServerConfig, logger log.Logger, vm services.VirtualMachine, stateStorage services.StateStorage, metricRegistry metric.Registry) *HttpServer {
	server := &HttpServer{
		logger:         logger.WithTags(LogTag),
		vm:             vm,
		stateStorage:   stateStorage,
		metricRegistry: metricRegistry,
		config:         cfg,
		limiter:        rate.NewLimiter(rate.Limit(cfg.HttpRequestsPerSecond()), int(cfg.HttpRequestsBurst())),
		metrics:        newMetrics(metricRegistry),
		startTime:      time.Now(),
		closed:         make(chan struct{}),
	}

	listener, err := net.Listen("tcp", cfg.HttpAddress())
	if err != nil {
		panic(fmt.Sprintf("failed to start http server: %s", err.Error()))
	}

	server.port = listener.Addr().(*net.TCPAddr).Port
	server.httpServer = &http.Server{
		Handler: server.createRouter(),
	}

	// Serve is preferred over ListenAndServe so that a bad address fails construction instead of a background goroutine
	govnr.Once(logfields.GovnrErrorer(server.logger), func() {
		defer close(server.closed)
		if err := server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)}); err != nil && err != http.ErrServerClosed {
			server.logger.Error("http server stopped unexpectedly", log.Error(err))
		}
	})

	server.logger.Info("started http server", log.String("address", listener.Addr().String()))

	return server
}

func (s *HttpServer) Port() int {
	return s.port
}

func (s *HttpServer) GracefulShutdown(shutdownContext context.Context) {
	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *HttpServer) WaitUntilShutdown(shutdownContext context.Context) {
	select {
	case <-s.closed:
	case <-shutdownContext.Done():
		s.logger.Info("timed out waiting for http server to shut down", log.Error(shutdownContext.Err()))
	}
}

func (s *HttpServer) createRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(s.withTrace, wrapHandlerWithCORS, s.withRateLimit)

	router.Method(http.MethodPost, jsonapi.SEND_PATH, http.HandlerFunc(s.sendHandler))
	router.Method(http.MethodPost, jsonapi.CALL_PATH, http.HandlerFunc(s.callHandler))
	router.Method(http.MethodGet, jsonapi.STATE_PATH+"/{contract}/{key}", http.HandlerFunc(s.readStateHandler))
	router.Method(http.MethodGet, "/metrics", http.HandlerFunc(s.dumpMetrics))
	router.Method(http.MethodGet, "/metrics.prometheus", http.HandlerFunc(s.dumpPrometheusMetrics))
	router.Method(http.MethodGet, "/status", http.HandlerFunc(s.getStatus))
	router.Method(http.MethodGet, "/robots.txt", http.HandlerFunc(s.robots))
	router.Method(http.MethodGet, "/debug/state", http.HandlerFunc(s.dumpState))
	router.Method(http.MethodPost, "/debug/logs/filter-on", http.HandlerFunc(s.filterOn))
	router.Method(http.MethodPost, "/debug/logs/filter-off", http.HandlerFunc(s.filterOff))

	if s.config.HttpProfiling() {
		registerPprof(router)
	}

	return router
}

func (s *HttpServer) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message)
	} else {
		s.logger.Info(m.message, m.logField)
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(m.code)
	_, err := w.Write([]byte(m.message))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func registerPprof(router chi.Router) {
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
	router.Handle("/debug/pprof/{profile}", http.HandlerFunc(pprof.Index))
}

// continues the caller's trace, or starts one per request
func (s *HttpServer) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(trace.NewFromRequest(r.Context(), r)))
	})
}

func (s *HttpServer) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.requests.Measure(1)
		if !s.limiter.Allow() {
			s.metrics.rateLimited.Inc()
			s.writeErrorResponseAndLog(w, &httpErr{http.StatusTooManyRequests, log.String("path", r.URL.Path), "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}
