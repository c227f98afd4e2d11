// internal/httpserver/server.go
//
// HTTP server wiring for the HOF Golf backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/ws" (snapshot push).
//   - Game endpoints: mounted in routes_game.go.
//   - Stats browse endpoints: mounted in routes_stats.go.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The server is a thin adapter: all game rules live in internal/game, all
//     database projections in internal/stats.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/modes"
	"github.com/hofgolf/go-server/internal/pools"
	"github.com/hofgolf/go-server/internal/stats"
	"github.com/hofgolf/go-server/internal/targets"
)

// WSHandler serves the websocket endpoint. *notify.Hub satisfies it.
type WSHandler interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// Server bundles the router and the game's collaborators.
type Server struct {
	r       *chi.Mux
	session *game.Session
	modes   *modes.Registry
	stats   *stats.Store
	scanner *targets.Scanner
	pools   *pools.Resolver
}

// New constructs a Server, installs middleware, and registers routes. ws may
// be nil (no push endpoint, used by tests).
func New(session *game.Session, reg *modes.Registry, st *stats.Store, sc *targets.Scanner, pr *pools.Resolver, ws WSHandler) *Server {
	s := &Server{r: chi.NewRouter(), session: session, modes: reg, stats: st, scanner: sc, pools: pr}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hofgolf-go","endpoints":["/health","/modes","POST /game/start","POST /game/navigate","/teams","/players/search"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	if ws != nil {
		s.r.Get("/ws", ws.ServeWS)
	}

	s.mountGame()
	s.mountStats()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
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

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
