// Package agent is the autonomous ticket triage pipeline: it classifies a
// ticket, retrieves knowledge context, decides whether to automate or
// escalate, and produces an ordered remediation plan for automatable work.
package agent

import (
	"time"

	"github.com/alphora/alphora/internal/rag"
)

// Decision is the outcome of analyzing a ticket.
type Decision string

const (
	DecisionAutomate    Decision = "automate"
	DecisionEscalate    Decision = "escalate"
	DecisionPendingInfo Decision = "pending_info"
)

// EscalationReason explains why a ticket was handed to a human.
type EscalationReason string

const (
	ReasonLowConfidence  EscalationReason = "low_confidence"
	ReasonNotAutomatable EscalationReason = "not_automatable"
	ReasonActionFailed   EscalationReason = "action_failed"
	ReasonRequiresHuman  EscalationReason = "requires_human"
	ReasonUnknownIntent  EscalationReason = "unknown_intent"
)

// AllEscalationReasons lists every reason; the next-steps catalog is
// validated against it at startup.
var AllEscalationReasons = []EscalationReason{
	ReasonLowConfidence,
	ReasonNotAutomatable,
	ReasonActionFailed,
	ReasonRequiresHuman,
	ReasonUnknownIntent,
}

// StepStatus tracks an action step through its lifecycle.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

// ActionStep is one remediation step in a plan. Orders run 1..N with no
// gaps.
type ActionStep struct {
	Order      int                    `json:"order"`
	Action     string                 `json:"action"`
	Tool       string                 `json:"tool"`
	Parameters map[string]interface{} `json:"parameters"`
	Status     StepStatus             `json:"status"`
	Result     string                 `json:"result,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// ActionPlan is an ordered remediation plan for one intent.
type ActionPlan struct {
	Intent            rag.Intent   `json:"intent"`
	Steps             []ActionStep `json:"steps"`
	EstimatedDuration int          `json:"estimated_duration"`
	RequiresApproval  bool         `json:"requires_approval"`
}

// TicketAnalysis is the full result of one pipeline run.
type TicketAnalysis struct {
	TicketID         string                   `json:"ticket_id"`
	Classification   rag.IntentClassification `json:"classification"`
	Context          rag.KnowledgeContext     `json:"context"`
	Decision         Decision                 `json:"decision"`
	EscalationReason EscalationReason         `json:"escalation_reason,omitempty"`
	ActionPlan       ActionPlan               `json:"action_plan"`
	ProcessedAt      time.Time                `json:"processed_at"`
}

// EscalationContext is handed to human-handoff tooling when a ticket
// cannot be automated.
type EscalationContext struct {
	TicketID           string                   `json:"ticket_id"`
	Reason             EscalationReason         `json:"reason"`
	Classification     rag.IntentClassification `json:"classification"`
	AttemptedActions   []ActionStep             `json:"attempted_actions"`
	SuggestedNextSteps []string                 `json:"suggested_next_steps"`
	EscalatedAt        time.Time                `json:"escalated_at"`
}
