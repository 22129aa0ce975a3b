package agent

import (
	"fmt"
	"log"
	"time"

	"github.com/alphora/alphora/internal/rag"
)

// escalationConfidenceFloor mirrors the classifier's automation floor: a
// classification below it is not trusted enough to act on.
const escalationConfidenceFloor = 0.3

var escalationNextSteps = map[EscalationReason][]string{
	ReasonLowConfidence: {
		"Review ticket details for additional context",
		"Contact user for clarification",
		"Manually classify ticket intent",
		"Update classification training data",
	},
	ReasonNotAutomatable: {
		"Manual intervention required",
		"Review client-specific procedures",
		"Consider remote session for complex issues",
		"Document resolution for future automation",
	},
	ReasonActionFailed: {
		"Review action logs for error details",
		"Attempt manual execution of failed step",
		"Check system connectivity and permissions",
		"Escalate to senior technician if persistent",
	},
	ReasonRequiresHuman: {
		"Schedule call with end user",
		"Coordinate with on-site resources if needed",
		"Review security implications",
		"Obtain necessary approvals",
	},
	ReasonUnknownIntent: {
		"Manually review ticket content",
		"Contact user for additional information",
		"Categorize ticket appropriately",
		"Consider adding new intent category",
	},
}

// ValidateEscalationCatalog checks that every reason has a non-empty
// next-steps entry.
func ValidateEscalationCatalog() error {
	for _, reason := range AllEscalationReasons {
		steps, ok := escalationNextSteps[reason]
		if !ok || len(steps) == 0 {
			return fmt.Errorf("escalation reason %s has no next-steps entry", reason)
		}
	}
	return nil
}

// Escalator decides when a ticket goes to a human and assembles the
// handoff context.
type Escalator struct{}

func NewEscalator() *Escalator {
	return &Escalator{}
}

// ShouldEscalate evaluates the escalation checks in strict priority
// order; the first match wins.
func (e *Escalator) ShouldEscalate(classification rag.IntentClassification) (bool, EscalationReason) {
	if !classification.IsAutomatable {
		return true, ReasonNotAutomatable
	}
	if classification.Confidence < escalationConfidenceFloor {
		return true, ReasonLowConfidence
	}
	if classification.Intent == rag.IntentUnknown {
		return true, ReasonUnknownIntent
	}
	return false, ""
}

// Escalate builds the escalation context for human handoff.
func (e *Escalator) Escalate(ticketID string, reason EscalationReason, classification rag.IntentClassification, attemptedActions []ActionStep) EscalationContext {
	log.Printf("Escalating ticket %s, reason: %s", ticketID, reason)

	nextSteps := e.suggestedNextSteps(reason, classification)
	context := EscalationContext{
		TicketID:           ticketID,
		Reason:             reason,
		Classification:     classification,
		AttemptedActions:   attemptedActions,
		SuggestedNextSteps: nextSteps,
		EscalatedAt:        time.Now(),
	}

	log.Printf("Escalation for ticket %s: intent=%s confidence=%.2f next steps=%d",
		context.TicketID, classification.Intent, classification.Confidence, len(nextSteps))
	return context
}

func (e *Escalator) suggestedNextSteps(reason EscalationReason, classification rag.IntentClassification) []string {
	steps, ok := escalationNextSteps[reason]
	if !ok {
		steps = escalationNextSteps[ReasonUnknownIntent]
	}
	if reason == ReasonNotAutomatable {
		out := make([]string, len(steps))
		copy(out, steps)
		out[0] = fmt.Sprintf("Manual intervention required for %s", classification.Intent)
		return out
	}
	return steps
}
