package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alphora/alphora/internal/actions"
	"github.com/alphora/alphora/internal/agent"
	"github.com/alphora/alphora/internal/classify"
	"github.com/alphora/alphora/internal/config"
	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

func newTestServer(t *testing.T) (*Server, *psa.Service, *rag.VectorStore) {
	t.Helper()

	store := rag.NewVectorStore(rag.NewMockEmbedder(64), nil, rag.NewMemoryBackend())
	orchestrator := rag.NewOrchestrator(store, classify.NewKeywordClassifier(), actions.Catalog{}, 5)
	processor := agent.NewProcessor(orchestrator, agent.NewPlanner(), agent.NewEscalator())
	ticketStore := psa.NewMemoryStore()
	tickets := psa.NewService(ticketStore)
	triage := agent.New(processor, ticketStore, nil, nil)

	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, tickets, triage, store)
	return srv, tickets, store
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateTicketEndpoint(t *testing.T) {
	srv, tickets, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/tickets", psa.CreateTicketRequest{
		ClientID: "client-1",
		Title:    "Password expired, locked out",
		Body:     "My password expired and I am locked out.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created psa.Ticket
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Status != psa.StatusNew {
		t.Fatalf("unexpected created ticket: %+v", created)
	}

	// Background processing eventually moves the ticket past new.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ticket, err := tickets.GetTicket(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get ticket: %v", err)
		}
		if ticket.Status != psa.StatusNew {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("background agent never picked up the ticket")
}

func TestCreateTicketRejectsMissingTitle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/tickets", psa.CreateTicketRequest{Body: "no title"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetTicketNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/tickets/no-such-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessTicketEndpoint(t *testing.T) {
	srv, tickets, _ := newTestServer(t)

	ticket, err := tickets.CreateTicket(context.Background(), psa.CreateTicketRequest{
		Title: "Password expired, locked out",
		Body:  "My password expired and I am locked out.",
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	rec := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/tickets/%s/process", ticket.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var analysis agent.TicketAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analysis.TicketID != ticket.ID {
		t.Fatalf("analysis for wrong ticket: %s", analysis.TicketID)
	}
	if analysis.Decision != agent.DecisionAutomate {
		t.Fatalf("expected automate, got %s", analysis.Decision)
	}
}

func TestProcessTicketNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/tickets/no-such-id/process", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestKnowledgeEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/knowledge/documents", rag.DocumentInput{
		Title:    "VPN client troubleshooting",
		Content:  "Update the client, verify credentials, review tunnel logs.",
		Category: rag.CategoryVPNIssue,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/knowledge/count", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var count map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if count["count"] != 1 {
		t.Fatalf("expected count 1, got %d", count["count"])
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/knowledge/search?q=vpn+tunnel&limit=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var results []rag.VectorSearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/knowledge/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing query, got %d", rec.Code)
	}
}

func TestKnowledgeAddRejectsIncompleteDocument(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/knowledge/documents", rag.DocumentInput{Title: "only title"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
