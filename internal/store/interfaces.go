package store

import (
	"context"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
)

// Embedder produces a fixed-length vector for one piece of summary text.
// Satisfied by embedding.GeminiClient; tests substitute fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorCollection is the slice of a Chroma collection the stores use.
type VectorCollection interface {
	Add(ctx context.Context, params chroma.AddParams) error
	Get(ctx context.Context, limit int) (*chroma.GetResult, error)
	Query(ctx context.Context, embedding []float32, nResults int) (*chroma.QueryResult, error)
	Delete(ctx context.Context, ids []string) ([]string, error)
}

// CollectionProvider hands out a live collection handle per operation,
// creating the collection if it does not exist yet.
type CollectionProvider interface {
	EnsureCollection(ctx context.Context, name string) (VectorCollection, error)
}

// chromaProvider adapts *chroma.Client to CollectionProvider.
type chromaProvider struct {
	client *chroma.Client
}

// NewChromaProvider wraps a Chroma client so the stores can depend on the
// narrow CollectionProvider interface.
func NewChromaProvider(client *chroma.Client) CollectionProvider {
	return &chromaProvider{client: client}
}

func (p *chromaProvider) EnsureCollection(ctx context.Context, name string) (VectorCollection, error) {
	return p.client.EnsureCollection(ctx, name)
}
