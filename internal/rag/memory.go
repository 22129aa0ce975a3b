package rag

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrDocumentNotFound is returned when a document id is not in the store.
var ErrDocumentNotFound = errors.New("document not found")

// MemoryBackend keeps documents in memory and ranks them with a full
// linear scan. It is the fallback when the vector index is unavailable,
// and the primary backend when no database is configured.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs []*KnowledgeDocument
	byID map[string]*KnowledgeDocument
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		byID: make(map[string]*KnowledgeDocument),
	}
}

func (m *MemoryBackend) Insert(ctx context.Context, doc *KnowledgeDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *doc
	m.docs = append(m.docs, &stored)
	m.byID[stored.ID] = &stored
	return nil
}

func (m *MemoryBackend) Search(ctx context.Context, embedding []float32, limit int, category Category) ([]VectorSearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]VectorSearchResult, 0, len(m.docs))
	for _, doc := range m.docs {
		if !doc.IsActive {
			continue
		}
		if category != "" && doc.Category != category {
			continue
		}
		results = append(results, VectorSearchResult{
			ID:         doc.ID,
			Title:      doc.Title,
			Content:    doc.Content,
			Category:   doc.Category,
			Tags:       doc.Tags,
			Similarity: CosineSimilarity(embedding, doc.Embedding),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MemoryBackend) Count(ctx context.Context, activeOnly bool) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !activeOnly {
		return len(m.docs), nil
	}
	count := 0
	for _, doc := range m.docs {
		if doc.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *MemoryBackend) SoftDelete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.byID[id]
	if !ok {
		return ErrDocumentNotFound
	}
	doc.IsActive = false
	return nil
}
