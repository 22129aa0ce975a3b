package psa

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory TicketStore used when no database is
// configured, and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	tickets map[string]*Ticket
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets: make(map[string]*Ticket),
	}
}

func (m *MemoryStore) CreateTicket(ctx context.Context, ticket *Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *ticket
	m.tickets[stored.ID] = &stored
	return nil
}

func (m *MemoryStore) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) UpdateTicket(ctx context.Context, id string, update TicketUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	if update.Status != "" {
		ticket.Status = update.Status
	}
	if update.ResolutionSteps != "" {
		ticket.ResolutionSteps = update.ResolutionSteps
	}
	if update.KnowledgeArticleID != "" {
		ticket.KnowledgeArticleID = update.KnowledgeArticleID
	}
	ticket.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) ListTickets(ctx context.Context, status Status) ([]*Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tickets []*Ticket
	for _, ticket := range m.tickets {
		if status != "" && ticket.Status != status {
			continue
		}
		copied := *ticket
		tickets = append(tickets, &copied)
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})
	return tickets, nil
}
