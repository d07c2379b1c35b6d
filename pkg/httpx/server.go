package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRateLimit      = 100
	defaultBodyLimit      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
)

// ServerConfig holds the router limits. Zero limits use the defaults:
// 100 requests per minute per client IP, 1 MiB bodies, 30s per request.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated origin list; "*" or empty
	// allows every origin.
	CORSAllowedOrigins string
	RateLimitPerMinute int
	MaxBodyBytes       int64
	RequestTimeout     time.Duration
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = defaultRateLimit
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultBodyLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return c
}

// Instrumentation is the process-level middleware main wires in. Nil
// entries are skipped.
type Instrumentation struct {
	Recover func(http.Handler) http.Handler // outermost
	Sentry  func(http.Handler) http.Handler
	Trace   func(http.Handler) http.Handler
	Log     func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the shared middleware stack, outermost
// first: recovery, sentry, request id, tracing, request log, real ip, rate
// limit, CORS, body limit, timeout, security headers. Unknown routes and
// methods answer with the usual JSON error body.
func NewRouter(cfg ServerConfig, inst Instrumentation) *chi.Mux {
	cfg = cfg.withDefaults()

	r := chi.NewRouter()
	use := func(mw func(http.Handler) http.Handler) {
		if mw != nil {
			r.Use(mw)
		}
	}
	use(inst.Recover)
	use(inst.Sentry)
	use(middleware.RequestID)
	use(inst.Trace)
	use(inst.Log)
	use(middleware.RealIP)
	use(RateLimit(cfg.RateLimitPerMinute))
	use(CORSMiddleware(cfg.CORSAllowedOrigins))
	use(RequestBodyLimit(cfg.MaxBodyBytes))
	use(middleware.Timeout(cfg.RequestTimeout))
	use(secure.New(securityOptions(cfg.IsDevelopment)).Handler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return r
}

func securityOptions(dev bool) secure.Options {
	return secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
		IsDevelopment:         dev,
	}
}

// RateLimit allows perMinute requests per client IP and answers the rest with
// a JSON 429 carrying Retry-After.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())))
			JSONError(w, http.StatusTooManyRequests, "too many form submissions, retry in a minute")
		}),
	)
}

// CORSMiddleware lets browsers post forms cross-origin: Accept-Language is
// accepted so clients can ask for localized messages, and Location is
// exposed so they can follow the redirect after a save.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: parseOrigins(allowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps request bodies at maxBytes. Reading past the cap
// fails with *http.MaxBytesError, which errhttp answers with 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server whose write deadline leaves room for a
// handler that runs for the full requestTimeout.
func NewServer(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
