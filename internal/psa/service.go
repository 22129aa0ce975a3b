package psa

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// CreateTicketRequest is the inbound shape for new tickets.
type CreateTicketRequest struct {
	ClientID string   `json:"client_id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Priority Priority `json:"priority"`
}

// Service wraps the ticket store with creation defaults and transition
// logging.
type Service struct {
	store TicketStore
}

func NewService(store TicketStore) *Service {
	return &Service{store: store}
}

func (s *Service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("ticket title is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	ticket := &Ticket{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		Title:     req.Title,
		Body:      req.Body,
		Status:    StatusNew,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %v", err)
	}
	log.Printf("Created ticket %s: %s", ticket.ID, ticket.Title)
	return ticket, nil
}

func (s *Service) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	return s.store.GetTicket(ctx, id)
}

func (s *Service) UpdateTicketStatus(ctx context.Context, id string, status Status) error {
	ticket, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("Updating ticket %s status: %s -> %s", id, ticket.Status, status)
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *Service) UpdateTicket(ctx context.Context, id string, update TicketUpdate) error {
	log.Printf("Updating ticket %s: status=%s", id, update.Status)
	return s.store.UpdateTicket(ctx, id, update)
}

func (s *Service) ListTickets(ctx context.Context, status Status) ([]*Ticket, error) {
	return s.store.ListTickets(ctx, status)
}
