package rag

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PgVectorBackend stores documents in Postgres and delegates ranking to
// the pgvector extension's cosine-distance operator.
type PgVectorBackend struct {
	pool *pgxpool.Pool
}

// NewPgVectorBackend enables the pgvector extension and ensures the
// knowledge_base table exists on an established pool. Any failure is
// returned to the caller, which degrades to the linear-scan fallback.
func NewPgVectorBackend(ctx context.Context, pool *pgxpool.Pool, dimension int) (*PgVectorBackend, error) {
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return nil, fmt.Errorf("failed to enable pgvector extension: %v", err)
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS knowledge_base (
			id UUID PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			content TEXT NOT NULL,
			category VARCHAR(50) NOT NULL DEFAULT 'general',
			tags TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(%d),
			embedding_model VARCHAR(100),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dimension)
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create knowledge_base table: %v", err)
	}
	if _, err := pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_knowledge_base_category ON knowledge_base (category)"); err != nil {
		return nil, fmt.Errorf("failed to create category index: %v", err)
	}

	log.Println("pgvector backend initialized")
	return &PgVectorBackend{pool: pool}, nil
}

func (p *PgVectorBackend) Insert(ctx context.Context, doc *KnowledgeDocument) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO knowledge_base
			(id, title, content, category, tags, embedding, embedding_model, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.Title, doc.Content, string(doc.Category), doc.Tags,
		pgvector.NewVector(doc.Embedding), doc.EmbeddingModel, doc.IsActive,
		doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (p *PgVectorBackend) Search(ctx context.Context, embedding []float32, limit int, category Category) ([]VectorSearchResult, error) {
	query := `
		SELECT id, title, content, category, tags,
			1 - (embedding <=> $1) AS similarity
		FROM knowledge_base
		WHERE is_active = true`
	args := []interface{}{pgvector.NewVector(embedding)}

	if category != "" {
		query += " AND category = $2"
		args = append(args, string(category))
	}
	query += fmt.Sprintf(" ORDER BY embedding <=> $1 LIMIT %d", limit)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []VectorSearchResult
	for rows.Next() {
		var r VectorSearchResult
		var cat string
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &cat, &r.Tags, &r.Similarity); err != nil {
			return nil, err
		}
		r.Category = Category(cat)
		results = append(results, r)
	}
	return results, rows.Err()
}

func (p *PgVectorBackend) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := "SELECT COUNT(*) FROM knowledge_base"
	if activeOnly {
		query += " WHERE is_active = true"
	}
	var count int
	if err := p.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *PgVectorBackend) SoftDelete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, "UPDATE knowledge_base SET is_active = false, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
