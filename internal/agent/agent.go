package agent

import (
	"context"
	"log"
	"sync"

	"github.com/alphora/alphora/internal/psa"
)

// Publisher emits the outcome of a pipeline run for downstream consumers.
// Publish failures never fail the run.
type Publisher interface {
	PublishAnalysis(ctx context.Context, analysis *TicketAnalysis) error
}

// AnalysisCache stores the latest analysis per ticket. Cache failures
// never fail the run.
type AnalysisCache interface {
	StoreAnalysis(ctx context.Context, analysis *TicketAnalysis) error
}

// Agent is the entrypoint for ticket triage. It runs the processor
// pipeline and drives the external ticket status machine: processing on
// start, resolved on automate, in_progress on escalate. A run that fails
// partway leaves the ticket in processing.
type Agent struct {
	processor *Processor
	tickets   psa.TicketStore
	publisher Publisher
	cache     AnalysisCache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(processor *Processor, tickets psa.TicketStore, publisher Publisher, cache AnalysisCache) *Agent {
	return &Agent{
		processor: processor,
		tickets:   tickets,
		publisher: publisher,
		cache:     cache,
		locks:     make(map[string]*sync.Mutex),
	}
}

// HandleTicket runs the full pipeline for one ticket id. Concurrent calls
// for the same ticket are serialized; calls for different tickets run
// independently.
func (a *Agent) HandleTicket(ctx context.Context, ticketID string) (*TicketAnalysis, error) {
	lock := a.lockTicket(ticketID)
	lock.Lock()
	defer lock.Unlock()

	ticket, err := a.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	log.Printf("Agent handling ticket %s (client %s): %s", ticket.ID, ticket.ClientID, ticket.Title)

	if err := a.tickets.UpdateStatus(ctx, ticket.ID, psa.StatusProcessing); err != nil {
		return nil, err
	}

	analysis, err := a.processor.Process(ctx, ticket)
	if err != nil {
		// Hard failure: the ticket stays in processing for operator
		// recovery via the status-filtered list.
		log.Printf("Pipeline failed for ticket %s: %v", ticket.ID, err)
		return nil, err
	}

	switch analysis.Decision {
	case DecisionAutomate:
		update := psa.TicketUpdate{Status: psa.StatusResolved}
		if len(analysis.Context.RelevantDocs) > 0 {
			top := analysis.Context.RelevantDocs[0]
			update.KnowledgeArticleID = top.ID
			update.ResolutionSteps = top.Content
		}
		if err := a.tickets.UpdateTicket(ctx, ticket.ID, update); err != nil {
			return nil, err
		}
		log.Printf("Ticket %s resolved automatically", ticket.ID)
	case DecisionEscalate:
		if err := a.tickets.UpdateStatus(ctx, ticket.ID, psa.StatusInProgress); err != nil {
			return nil, err
		}
		log.Printf("Ticket %s escalated to human technician", ticket.ID)
	}

	if a.publisher != nil {
		if err := a.publisher.PublishAnalysis(ctx, analysis); err != nil {
			log.Printf("Failed to publish analysis for ticket %s: %v", ticket.ID, err)
		}
	}
	if a.cache != nil {
		if err := a.cache.StoreAnalysis(ctx, analysis); err != nil {
			log.Printf("Failed to cache analysis for ticket %s: %v", ticket.ID, err)
		}
	}

	return analysis, nil
}

func (a *Agent) lockTicket(ticketID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[ticketID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[ticketID] = lock
	}
	return lock
}
