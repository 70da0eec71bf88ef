// internal/httpserver/server.go
//
// HTTP server wiring for the Senha backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (player token required except for /game/new), see routes_game.go.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Each game is only reachable by the player whose token created it.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/senha/internal/hint"
	"github.com/robalobadob/senha/internal/store"
)

const (
	defaultRequestTimeout = 15 * time.Second
	requestHeadroom       = 2 * time.Second
)

// Options configures a Server. Zero fields fall back to development defaults.
type Options struct {
	ClientOrigin  string
	TokenSecret   string
	CookieName    string
	TokenTTL      time.Duration
	SecureCookies bool
	HintTimeout   time.Duration
	// RequestTimeout bounds every handler; it is kept above HintTimeout
	// so a slow hint still answers with its fallback.
	RequestTimeout time.Duration
	DailySalt      string
	Hinter         hint.Hinter
	Now            func() time.Time
}

func (o *Options) defaults() {
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.TokenSecret == "" {
		o.TokenSecret = "dev_secret_change_me"
	}
	if o.CookieName == "" {
		o.CookieName = "senha_token"
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.HintTimeout <= 0 {
		o.HintTimeout = 8 * time.Second
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if floor := o.HintTimeout + requestHeadroom; o.RequestTimeout < floor {
		o.RequestTimeout = floor
	}
	if o.Hinter == nil {
		o.Hinter = hint.Local{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Server bundles router, session store and hint collaborator.
type Server struct {
	r      *chi.Mux
	store  store.Store
	hinter hint.Hinter
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	opts.defaults()
	s := &Server{r: chi.NewRouter(), store: st, hinter: hint.Guard(opts.Hinter), opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                          // zerolog access log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(s.cors)                             // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"senha-go","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/{slot,select,delete,submit,hint}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountGame()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request through the global zerolog logger.
func accessLog(next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("reqId", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("dur", d).
			Msg("request")
	})(next)
	return hlog.NewHandler(log.Logger)(h)
}

// ------------------------------- helpers -----------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// logger returns the request-scoped logger.
func logger(r *http.Request) *zerolog.Logger { return hlog.FromRequest(r) }
