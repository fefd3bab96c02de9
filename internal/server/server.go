package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/FarmBot_Go/docs"
	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/handler"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/sse"
)

// Options configures the HTTP transport
type Options struct {
	Port              int
	APIKey            string
	TrustedProxies    []string
	MaxBodyBytes      int64
	ReadHeaderTimeout time.Duration
	Detector          DetectorConfig

	// Activity serves /farm/activity when set
	Activity eventlog.Service
	// Events serves the /farm/events stream when set
	Events *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router: public probes, metrics and docs, and the
// authenticated farm API under /api/v1/farm.
func NewServer(opts Options, store handler.Pinger, c *catalog.Catalog, mgr farm.Manager) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, store, c, mgr),
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
		},
	}
}

// NewRouter returns the fully wired handler without binding a port
func NewRouter(opts Options, store handler.Pinger, c *catalog.Catalog, mgr farm.Manager) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	proxies := NewTrustedProxies(opts.TrustedProxies)
	detector := NewSuspiciousActivityDetectorWithConfig(opts.Detector)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Get("/version", handler.HandleVersion(c))
	r.Handle("/metrics", promhttp.Handler())

	farmHandler := handler.NewFarmHandler(mgr)
	r.Route(APIPrefix+"/farm", func(r chi.Router) {
		r.Post("/register", farmHandler.Register)
		r.Post("/rename", farmHandler.Rename)
		r.Get("/status", farmHandler.Status)
		r.Get("/balance", farmHandler.Balance)
		r.Post("/signin", farmHandler.SignIn)
		if opts.Activity != nil {
			r.Get("/activity", handler.HandleActivity(opts.Activity))
		}
		if opts.Events != nil {
			r.Get("/events", sse.Handler(opts.Events))
		}

		r.Get("/shop", farmHandler.Shop)
		r.Post("/shop/buy", farmHandler.BuySeed)
		r.Post("/sell", farmHandler.Sell)
		r.Get("/seeds", farmHandler.Seeds)
		r.Get("/crops", farmHandler.Crops)

		r.Post("/sow", farmHandler.Sow)
		r.Post("/harvest", farmHandler.Harvest)
		r.Post("/eradicate", farmHandler.Eradicate)
		r.Post("/till", farmHandler.Till)
		r.Post("/steal", farmHandler.Steal)

		r.Route("/reclaim", func(r chi.Router) {
			r.Get("/condition", farmHandler.ReclaimCondition)
			r.Post("/confirm", farmHandler.Confirm(domain.OperationReclaim))
		})
		r.Route("/upgrade", func(r chi.Router) {
			r.Get("/condition", farmHandler.UpgradeCondition)
			r.Post("/confirm", farmHandler.Confirm(domain.OperationUpgrade))
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	for _, prefix := range quietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// loggingMiddleware tags each request with an ID, echoes it in X-Request-ID and
// logs start and completion. Secret headers are redacted.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. A graceful stop is not an error.
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
