// Package httpapi is the HTTP surface of the service: the /graphql
// endpoint plus operational endpoints (health, readiness, metrics).
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"staffhub.dev/internal/auth"
	"staffhub.dev/internal/obs"
	"staffhub.dev/internal/store"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB per request body
	readyTimeout = 5 * time.Second
)

// API owns the mux and the collaborators the HTTP layer needs.
type API struct {
	mux     *http.ServeMux
	store   store.Store
	tokens  *auth.Tokens
	version string
}

// New wires the endpoint table. The GraphQL handler is wrapped with the
// bearer-token identity middleware; authorization itself happens
// per-operation in the resolver layer.
func New(st store.Store, tokens *auth.Tokens, schema *graphql.Schema, version string) *API {
	a := &API{
		mux:     http.NewServeMux(),
		store:   st,
		tokens:  tokens,
		version: version,
	}

	a.mux.Handle("/graphql", a.withIdentity(&relay.Handler{Schema: schema}))

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = MaxBodyBytes(h, maxBodyBytes)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = Logging(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "staffhub-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := a.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "staffhub-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
