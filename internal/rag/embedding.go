package rag

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// EmbeddingProvider turns text into fixed-length vectors. All vectors
// produced by one provider have the same dimension.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
	Dimension() int
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"embedding_model"`
	Dimension      int           `yaml:"embedding_dimension"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RequestsPerSec float64       `yaml:"requests_per_sec"`
}

// NewEmbeddingProvider returns an OpenAI-backed provider when an API key
// is configured, and a deterministic mock otherwise. The mock keeps
// cosine-similarity math meaningful without network access.
func NewEmbeddingProvider(cfg EmbeddingConfig) EmbeddingProvider {
	if cfg.Dimension <= 0 {
		cfg.Dimension = 1536
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-ada-002"
	}
	if cfg.APIKey == "" {
		log.Println("OpenAI API key not configured, using mock embeddings")
		return NewMockEmbedder(cfg.Dimension)
	}
	return NewOpenAIEmbedder(cfg)
}

// OpenAIEmbedder calls the OpenAI embeddings endpoint. Transport and
// non-2xx failures are returned to the caller; there is no fallback once
// live mode is selected.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	timeout   time.Duration
	limiter   *rate.Limiter
}

func NewOpenAIEmbedder(cfg EmbeddingConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 10
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: cfg.Dimension,
		timeout:   cfg.RequestTimeout,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.AdaEmbeddingV2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %v", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, item := range resp.Data {
		if len(item.Embedding) != e.dimension {
			return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(item.Embedding), e.dimension)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) Model() string  { return e.model }
func (e *OpenAIEmbedder) Dimension() int { return e.dimension }

// MockEmbedder derives a unit vector from a stable hash of the text, so
// identical texts always map to identical vectors.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 1536
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	hash := hashText(text)
	vector := make([]float32, e.dimension)
	for i := range vector {
		vector[i] = float32(seededUnit(hash+int64(i))*2 - 1)
	}
	normalize(vector)
	return vector, nil
}

func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *MockEmbedder) Model() string  { return "mock" }
func (e *MockEmbedder) Dimension() int { return e.dimension }

func hashText(text string) int64 {
	var hash int32
	for _, r := range text {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int64(hash)
}

// seededUnit maps a seed to a pseudo-random value in [0,1).
func seededUnit(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

func normalize(vector []float32) {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		return
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / magnitude)
	}
}
