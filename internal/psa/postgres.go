package psa

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists tickets in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS tickets (
			id UUID PRIMARY KEY,
			client_id UUID,
			title VARCHAR(500) NOT NULL,
			body TEXT NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'new',
			priority VARCHAR(50) NOT NULL DEFAULT 'medium',
			resolution_steps TEXT,
			knowledge_article_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create tickets table: %v", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) CreateTicket(ctx context.Context, ticket *Ticket) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tickets (id, client_id, title, body, status, priority, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8)`,
		ticket.ID, ticket.ClientID, ticket.Title, ticket.Body,
		string(ticket.Status), string(ticket.Priority), ticket.CreatedAt, ticket.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, COALESCE(client_id::text, ''), title, body, status, priority,
			COALESCE(resolution_steps, ''), COALESCE(knowledge_article_id::text, ''),
			created_at, updated_at
		FROM tickets WHERE id = $1`, id)

	var t Ticket
	var status, priority string
	err := row.Scan(&t.ID, &t.ClientID, &t.Title, &t.Body, &status, &priority,
		&t.ResolutionSteps, &t.KnowledgeArticleID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	t.Priority = Priority(priority)
	return &t, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE tickets SET status = $2, updated_at = now() WHERE id = $1",
		id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateTicket(ctx context.Context, id string, update TicketUpdate) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tickets SET
			status = COALESCE(NULLIF($2, ''), status),
			resolution_steps = COALESCE(NULLIF($3, ''), resolution_steps),
			knowledge_article_id = COALESCE(NULLIF($4, '')::uuid, knowledge_article_id),
			updated_at = now()
		WHERE id = $1`,
		id, string(update.Status), update.ResolutionSteps, update.KnowledgeArticleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (s *PostgresStore) ListTickets(ctx context.Context, status Status) ([]*Ticket, error) {
	query := `
		SELECT id, COALESCE(client_id::text, ''), title, body, status, priority,
			COALESCE(resolution_steps, ''), COALESCE(knowledge_article_id::text, ''),
			created_at, updated_at
		FROM tickets`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		var t Ticket
		var st, priority string
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Title, &t.Body, &st, &priority,
			&t.ResolutionSteps, &t.KnowledgeArticleID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = Status(st)
		t.Priority = Priority(priority)
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}
