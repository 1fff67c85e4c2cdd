// Package similarity maintains an in-memory vector index of known scam
// messages. Incoming text is embedded with the engine's own signal
// features and compared against the corpus; a strong match becomes one
// more indicator for the fusion step. No external embedding service is
// involved.
package similarity

import (
	"context"
	"fmt"
	"math"

	"github.com/philippgille/chromem-go"
)

// Embedder turns text into the signal sub-vector used for comparison.
// The analyzer package supplies this so the index shares the engine's
// feature definitions.
type Embedder func(text string) []float64

// Hit is one similar known scam.
type Hit struct {
	ID         string
	Label      string
	Similarity float64
}

// Seed is a known scam message added to the index at startup.
type Seed struct {
	ID    string
	Label string
	Text  string
}

// Index wraps a chromem collection of known scam embeddings.
type Index struct {
	collection *chromem.Collection
	embed      Embedder
}

// minSignalNorm rejects texts whose signal vector is effectively zero;
// cosine similarity is meaningless between near-zero vectors.
const minSignalNorm = 1e-6

// New builds an index over the seed corpus using the given embedder.
func New(embed Embedder, seeds []Seed) (*Index, error) {
	db := chromem.NewDB()

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		vec, ok := normalizedEmbedding(embed(text))
		if !ok {
			return nil, fmt.Errorf("text has no scam signal to embed")
		}
		return vec, nil
	}

	collection, err := db.CreateCollection("known-scams", nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create scam collection: %w", err)
	}

	idx := &Index{collection: collection, embed: embed}
	for _, seed := range seeds {
		doc := chromem.Document{
			ID:       seed.ID,
			Content:  seed.Text,
			Metadata: map[string]string{"label": seed.Label},
		}
		if err := collection.AddDocument(context.Background(), doc); err != nil {
			return nil, fmt.Errorf("seed scam %s: %w", seed.ID, err)
		}
	}
	return idx, nil
}

// Query returns the closest known scam, or ok=false when the text carries
// no scam signal or the index is empty.
func (idx *Index) Query(ctx context.Context, text string) (Hit, bool) {
	if idx == nil || idx.collection == nil || idx.collection.Count() == 0 {
		return Hit{}, false
	}
	if _, ok := normalizedEmbedding(idx.embed(text)); !ok {
		return Hit{}, false
	}

	results, err := idx.collection.Query(ctx, text, 1, nil, nil)
	if err != nil || len(results) == 0 {
		return Hit{}, false
	}

	res := results[0]
	return Hit{
		ID:         res.ID,
		Label:      res.Metadata["label"],
		Similarity: float64(res.Similarity),
	}, true
}

// normalizedEmbedding L2-normalizes the signal vector as float32.
// ok=false when the vector is (near) zero.
func normalizedEmbedding(vec []float64) ([]float32, bool) {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm < minSignalNorm {
		return nil, false
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, true
}
