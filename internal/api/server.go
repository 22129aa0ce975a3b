// Package api exposes the ticket and knowledge-base surfaces over HTTP.
// Routing and validation only; all intelligence lives in the agent and
// rag packages.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/alphora/alphora/internal/agent"
	"github.com/alphora/alphora/internal/config"
	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

// Server is the HTTP front of the service.
type Server struct {
	server  *http.Server
	router  *mux.Router
	tickets *psa.Service
	agent   *agent.Agent
	store   *rag.VectorStore
	cfg     config.ServerConfig
}

func NewServer(cfg config.ServerConfig, tickets *psa.Service, triage *agent.Agent, store *rag.VectorStore) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		tickets: tickets,
		agent:   triage,
		store:   store,
		cfg:     cfg,
	}
	s.setupRoutes()
	s.setupCORS()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tickets", s.handleCreateTicket).Methods("POST")
	api.HandleFunc("/tickets", s.handleListTickets).Methods("GET")
	api.HandleFunc("/tickets/{id}", s.handleGetTicket).Methods("GET")
	api.HandleFunc("/tickets/{id}/process", s.handleProcessTicket).Methods("POST")
	api.HandleFunc("/knowledge/search", s.handleSearchKnowledge).Methods("GET")
	api.HandleFunc("/knowledge/documents", s.handleAddDocument).Methods("POST")
	api.HandleFunc("/knowledge/count", s.handleDocumentCount).Methods("GET")
}

func (s *Server) setupCORS() {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(c.Handler)
}

// Start blocks serving HTTP until shutdown.
func (s *Server) Start() error {
	log.Printf("API server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
