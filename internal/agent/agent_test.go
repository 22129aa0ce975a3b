package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/alphora/alphora/internal/actions"
	"github.com/alphora/alphora/internal/classify"
	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

type recordingPublisher struct {
	published []*TicketAnalysis
	err       error
}

func (p *recordingPublisher) PublishAnalysis(ctx context.Context, analysis *TicketAnalysis) error {
	p.published = append(p.published, analysis)
	return p.err
}

type recordingCache struct {
	stored []*TicketAnalysis
	err    error
}

func (c *recordingCache) StoreAnalysis(ctx context.Context, analysis *TicketAnalysis) error {
	c.stored = append(c.stored, analysis)
	return c.err
}

type failingClassifier struct{}

func (failingClassifier) Classify(ctx context.Context, title, body string) (rag.IntentClassification, error) {
	return rag.IntentClassification{}, errors.New("endpoint unreachable")
}

func newTestAgent(t *testing.T, classifier rag.Classifier, publisher Publisher, cache AnalysisCache) (*Agent, psa.TicketStore) {
	t.Helper()

	store := rag.NewVectorStore(rag.NewMockEmbedder(64), nil, rag.NewMemoryBackend())
	if _, err := store.AddDocuments(context.Background(), []rag.DocumentInput{
		{
			Title:    "Active Directory password reset",
			Content:  "Verify identity, reset the password in AD, force change at next logon.",
			Category: rag.CategoryPasswordReset,
		},
		{
			Title:    "Remote workstation restart",
			Content:  "Notify the user, restart via RMM, verify the endpoint comes back.",
			Category: rag.CategorySystemRestart,
		},
	}); err != nil {
		t.Fatalf("seed documents: %v", err)
	}

	orchestrator := rag.NewOrchestrator(store, classifier, actions.Catalog{}, 5)
	processor := NewProcessor(orchestrator, NewPlanner(), NewEscalator())
	tickets := psa.NewMemoryStore()
	return New(processor, tickets, publisher, cache), tickets
}

func createTicket(t *testing.T, tickets psa.TicketStore, title, body string) *psa.Ticket {
	t.Helper()
	ticket := &psa.Ticket{
		ID:       "T-" + title[:1],
		ClientID: "client-1",
		Title:    title,
		Body:     body,
		Status:   psa.StatusNew,
		Priority: psa.PriorityMedium,
	}
	if err := tickets.CreateTicket(context.Background(), ticket); err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return ticket
}

func TestHandleTicketAutomatesAndResolves(t *testing.T) {
	publisher := &recordingPublisher{}
	cache := &recordingCache{}
	a, tickets := newTestAgent(t, classify.NewKeywordClassifier(), publisher, cache)
	ctx := context.Background()

	ticket := createTicket(t, tickets,
		"Password expired, locked out",
		"My password expired this morning and now I am locked out of my account.")

	analysis, err := a.HandleTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("handle ticket: %v", err)
	}

	if analysis.Decision != DecisionAutomate {
		t.Fatalf("expected automate, got %s (%s)", analysis.Decision, analysis.EscalationReason)
	}
	if analysis.Classification.Intent != rag.IntentPasswordReset {
		t.Fatalf("unexpected intent %s", analysis.Classification.Intent)
	}
	if len(analysis.ActionPlan.Steps) == 0 {
		t.Fatal("automate decision must carry an action plan")
	}

	updated, err := tickets.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if updated.Status != psa.StatusResolved {
		t.Fatalf("expected resolved, got %s", updated.Status)
	}
	if updated.KnowledgeArticleID == "" || updated.ResolutionSteps == "" {
		t.Fatal("resolved ticket should carry the top knowledge article")
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published analysis, got %d", len(publisher.published))
	}
	if len(cache.stored) != 1 {
		t.Fatalf("expected 1 cached analysis, got %d", len(cache.stored))
	}
}

func TestHandleTicketEscalatesUnrecognized(t *testing.T) {
	a, tickets := newTestAgent(t, classify.NewKeywordClassifier(), nil, nil)
	ctx := context.Background()

	ticket := createTicket(t, tickets,
		"Odd noises from the server room",
		"There are strange blinking lights near the rack.")

	analysis, err := a.HandleTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("handle ticket: %v", err)
	}

	if analysis.Decision != DecisionEscalate {
		t.Fatalf("expected escalate, got %s", analysis.Decision)
	}
	if analysis.EscalationReason != ReasonNotAutomatable {
		t.Fatalf("expected not_automatable, got %s", analysis.EscalationReason)
	}
	if len(analysis.ActionPlan.Steps) != 0 {
		t.Fatal("escalated analysis must not carry plan steps")
	}
	if len(analysis.Context.SuggestedActions) == 0 {
		t.Fatal("escalated analysis should suggest next steps")
	}
	if len(analysis.Context.HistoricalResolutions) != 0 {
		t.Fatal("escalated analysis must not carry historical resolutions")
	}

	updated, err := tickets.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if updated.Status != psa.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", updated.Status)
	}
}

func TestHandleTicketPipelineFailureLeavesProcessing(t *testing.T) {
	a, tickets := newTestAgent(t, failingClassifier{}, nil, nil)
	ctx := context.Background()

	ticket := createTicket(t, tickets, "Anything at all", "body")

	if _, err := a.HandleTicket(ctx, ticket.ID); err == nil {
		t.Fatal("expected pipeline error")
	}

	updated, err := tickets.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if updated.Status != psa.StatusProcessing {
		t.Fatalf("failed run should leave ticket in processing, got %s", updated.Status)
	}
}

func TestHandleTicketUnknownID(t *testing.T) {
	a, _ := newTestAgent(t, classify.NewKeywordClassifier(), nil, nil)

	_, err := a.HandleTicket(context.Background(), "no-such-ticket")
	if !errors.Is(err, psa.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestHandleTicketSidecarFailuresAreSoft(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	cache := &recordingCache{err: errors.New("cache down")}
	a, tickets := newTestAgent(t, classify.NewKeywordClassifier(), publisher, cache)
	ctx := context.Background()

	ticket := createTicket(t, tickets,
		"Password expired, locked out",
		"My password expired and I am locked out.")

	if _, err := a.HandleTicket(ctx, ticket.ID); err != nil {
		t.Fatalf("publish/cache failures must not fail the run: %v", err)
	}

	updated, err := tickets.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if updated.Status != psa.StatusResolved {
		t.Fatalf("expected resolved, got %s", updated.Status)
	}
}
