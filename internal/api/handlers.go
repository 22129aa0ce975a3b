package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req psa.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := s.tickets.CreateTicket(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Agent processing runs in the background; a pipeline failure is
	// logged, not surfaced to the ticket creator.
	go func(ticketID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.agent.HandleTicket(ctx, ticketID); err != nil {
			log.Printf("Agent processing failed for ticket %s: %v", ticketID, err)
		}
	}(ticket.ID)

	writeJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	status := psa.Status(r.URL.Query().Get("status"))
	tickets, err := s.tickets.ListTickets(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tickets == nil {
		tickets = []*psa.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ticket, err := s.tickets.GetTicket(r.Context(), id)
	if errors.Is(err, psa.ErrTicketNotFound) {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleProcessTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	analysis, err := s.agent.HandleTicket(r.Context(), id)
	if errors.Is(err, psa.ErrTicketNotFound) {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleSearchKnowledge(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	category := rag.Category(r.URL.Query().Get("category"))

	results, err := s.store.SearchSimilar(r.Context(), query, limit, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []rag.VectorSearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	var input rag.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" || input.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	doc, err := s.store.AddDocument(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDocumentCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.DocumentCount(r.Context(), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
