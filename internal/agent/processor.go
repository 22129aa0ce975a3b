package agent

import (
	"context"
	"log"
	"time"

	"github.com/alphora/alphora/internal/psa"
	"github.com/alphora/alphora/internal/rag"
)

// Processor runs the analysis pipeline for one ticket: knowledge query,
// escalation check, then either an action plan or an escalation context.
type Processor struct {
	orchestrator *rag.Orchestrator
	planner      *Planner
	escalator    *Escalator
}

func NewProcessor(orchestrator *rag.Orchestrator, planner *Planner, escalator *Escalator) *Processor {
	return &Processor{
		orchestrator: orchestrator,
		planner:      planner,
		escalator:    escalator,
	}
}

// Process analyzes a ticket. Hard transport failures from the classifier
// or the vector store abort the run and propagate to the caller.
func (p *Processor) Process(ctx context.Context, ticket *psa.Ticket) (*TicketAnalysis, error) {
	log.Printf("Processing ticket %s: %s", ticket.ID, ticket.Title)

	result, err := p.orchestrator.RunQuery(ctx, ticket.Title, ticket.Body)
	if err != nil {
		return nil, err
	}

	classification := result.Classification
	log.Printf("Ticket %s classified as %s (confidence %.2f, automatable %t)",
		ticket.ID, classification.Intent, classification.Confidence, classification.IsAutomatable)

	if escalate, reason := p.escalator.ShouldEscalate(classification); escalate {
		log.Printf("Ticket %s requires escalation: %s", ticket.ID, reason)

		escalation := p.escalator.Escalate(ticket.ID, reason, classification, nil)
		return &TicketAnalysis{
			TicketID:       ticket.ID,
			Classification: classification,
			Context: rag.KnowledgeContext{
				RelevantDocs:          result.Context.RelevantDocs,
				SuggestedActions:      escalation.SuggestedNextSteps,
				HistoricalResolutions: []rag.HistoricalResolution{},
			},
			Decision:         DecisionEscalate,
			EscalationReason: reason,
			ActionPlan: ActionPlan{
				Intent: classification.Intent,
				Steps:  []ActionStep{},
			},
			ProcessedAt: time.Now(),
		}, nil
	}

	plan := p.planner.CreatePlan(classification.Intent, result.Context)
	analysis := &TicketAnalysis{
		TicketID:       ticket.ID,
		Classification: classification,
		Context:        result.Context,
		Decision:       DecisionAutomate,
		ActionPlan:     plan,
		ProcessedAt:    time.Now(),
	}

	log.Printf("Ticket %s analysis complete: decision=%s plan steps=%d duration=%d min",
		ticket.ID, analysis.Decision, len(plan.Steps), plan.EstimatedDuration)
	return analysis, nil
}
