// Package server exposes saved canvas setups over a JSON HTTP API so
// external front-ends can load and persist them.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowpad/flowpad/internal/graph"
	"github.com/flowpad/flowpad/internal/setup"
)

// Server serves the setup API.
type Server struct {
	store setup.Store
	rules graph.Rules

	registry *prometheus.Registry
	saves    prometheus.Counter
	loads    prometheus.Counter
	repairs  prometheus.Counter
}

// New creates a server over the given store. Documents written through
// the API are sanitized under the given rules before they are stored.
func New(store setup.Store, rules graph.Rules) *Server {
	s := &Server{
		store:    store,
		rules:    rules,
		registry: prometheus.NewRegistry(),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowpad_setups_saved_total",
			Help: "Setups written through the API.",
		}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowpad_setups_loaded_total",
			Help: "Setups read through the API.",
		}),
		repairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowpad_setup_entries_repaired_total",
			Help: "Nodes and connections dropped by load-time sanitizing.",
		}),
	}
	s.registry.MustRegister(s.saves, s.loads, s.repairs)
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/setups", func(r chi.Router) {
		r.Get("/", s.listSetups)
		r.Get("/{id}", s.getSetup)
		r.Put("/{id}", s.putSetup)
		r.Delete("/{id}", s.deleteSetup)
	})

	return r
}

func (s *Server) listSetups(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("list setups failed", "error", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"setups": ids})
}

func (s *Server) getSetup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, setup.ErrNotFound) {
			http.Error(w, "setup not found", http.StatusNotFound)
			return
		}
		slog.Error("load setup failed", "id", id, "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	s.loads.Inc()
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) putSetup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc setup.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		slog.Warn("rejecting malformed setup", "id", id, "error", err)
		http.Error(w, "invalid setup document", http.StatusBadRequest)
		return
	}

	if dropped := doc.Sanitize(s.rules); dropped > 0 {
		slog.Info("sanitized incoming setup", "id", id, "dropped", dropped)
		s.repairs.Add(float64(dropped))
	}

	if err := s.store.Save(r.Context(), id, &doc); err != nil {
		slog.Error("save setup failed", "id", id, "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	s.saves.Inc()
	slog.Info("setup saved", "id", id, "nodes", len(doc.Nodes), "connections", len(doc.Connections))
	writeJSON(w, http.StatusOK, &doc)
}

func (s *Server) deleteSetup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, setup.ErrNotFound) {
			http.Error(w, "setup not found", http.StatusNotFound)
			return
		}
		slog.Error("delete setup failed", "id", id, "error", err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
