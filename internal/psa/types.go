// Package psa is the boundary to the externally-owned ticket records: the
// ticket model, its storage interface, and the narrow status-transition
// surface the agent drives.
package psa

import (
	"context"
	"errors"
	"time"
)

// ErrTicketNotFound is returned when a ticket id has no record.
var ErrTicketNotFound = errors.New("ticket not found")

// Status is the ticket lifecycle state. The agent drives new→processing
// and processing→{resolved,in_progress}; closed is reached only by an
// external actor.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Ticket is the externally-owned support ticket record.
type Ticket struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"`
	Title              string    `json:"title"`
	Body               string    `json:"body"`
	Status             Status    `json:"status"`
	Priority           Priority  `json:"priority"`
	ResolutionSteps    string    `json:"resolution_steps,omitempty"`
	KnowledgeArticleID string    `json:"knowledge_article_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TicketUpdate carries the fields the agent may write back after a run.
type TicketUpdate struct {
	Status             Status `json:"status"`
	ResolutionSteps    string `json:"resolution_steps,omitempty"`
	KnowledgeArticleID string `json:"knowledge_article_id,omitempty"`
}

// TicketStore is the persistence interface for tickets.
type TicketStore interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateTicket(ctx context.Context, id string, update TicketUpdate) error
	ListTickets(ctx context.Context, status Status) ([]*Ticket, error)
}
