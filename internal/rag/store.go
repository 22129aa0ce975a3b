package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrDimensionMismatch is returned when a document's embedding does not
// match the dimension of the deployment.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// DocumentBackend is a storage strategy for knowledge documents. The
// index-backed and linear-scan implementations behave identically from
// the caller's perspective.
type DocumentBackend interface {
	Insert(ctx context.Context, doc *KnowledgeDocument) error
	Search(ctx context.Context, embedding []float32, limit int, category Category) ([]VectorSearchResult, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	SoftDelete(ctx context.Context, id string) error
}

// DocumentInput describes a document to be added to the store.
type DocumentInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
}

// VectorStore embeds documents and queries, and ranks active documents by
// cosine similarity through whichever backend is available.
type VectorStore struct {
	embedder EmbeddingProvider
	backend  DocumentBackend
}

// NewVectorStore wires the embedding provider to a backend. If the
// index-backed backend is unavailable the store degrades to the given
// fallback (a linear in-memory scan) for the process lifetime.
func NewVectorStore(embedder EmbeddingProvider, backend DocumentBackend, fallback DocumentBackend) *VectorStore {
	if backend == nil {
		log.Println("Vector index backend unavailable, using linear-scan fallback")
		backend = fallback
	}
	return &VectorStore{
		embedder: embedder,
		backend:  backend,
	}
}

// AddDocument embeds and stores a single document.
func (vs *VectorStore) AddDocument(ctx context.Context, input DocumentInput) (*KnowledgeDocument, error) {
	docs, err := vs.AddDocuments(ctx, []DocumentInput{input})
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// AddDocuments embeds and stores a batch of documents. Embeddings are
// generated from the concatenated title and content.
func (vs *VectorStore) AddDocuments(ctx context.Context, inputs []DocumentInput) ([]*KnowledgeDocument, error) {
	log.Printf("Adding %d documents to knowledge base", len(inputs))

	texts := make([]string, len(inputs))
	for i, input := range inputs {
		texts[i] = input.Title + "\n\n" + input.Content
	}

	embeddings, err := vs.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %v", err)
	}

	now := time.Now()
	docs := make([]*KnowledgeDocument, len(inputs))
	for i, input := range inputs {
		if len(embeddings[i]) != vs.embedder.Dimension() {
			return nil, ErrDimensionMismatch
		}
		category := input.Category
		if category == "" {
			category = CategoryGeneral
		}
		doc := &KnowledgeDocument{
			ID:             uuid.New().String(),
			Title:          input.Title,
			Content:        input.Content,
			Category:       category,
			Tags:           input.Tags,
			Embedding:      embeddings[i],
			EmbeddingModel: vs.embedder.Model(),
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := vs.backend.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to store document %q: %v", input.Title, err)
		}
		docs[i] = doc
	}
	return docs, nil
}

// SearchSimilar embeds the query and returns the most similar active
// documents, optionally restricted to one category. Results are ordered
// by descending cosine similarity.
func (vs *VectorStore) SearchSimilar(ctx context.Context, query string, limit int, category Category) ([]VectorSearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	embedding, err := vs.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %v", err)
	}

	results, err := vs.backend.Search(ctx, embedding, limit, category)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %v", err)
	}
	return results, nil
}

// DocumentCount reports how many documents are stored.
func (vs *VectorStore) DocumentCount(ctx context.Context, activeOnly bool) (int, error) {
	return vs.backend.Count(ctx, activeOnly)
}

// DeleteDocument soft-deletes a document; searches no longer consider it.
func (vs *VectorStore) DeleteDocument(ctx context.Context, id string) error {
	return vs.backend.SoftDelete(ctx, id)
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// A zero-magnitude vector has similarity 0 with everything.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
