package store

import (
	"context"
	"fmt"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
)

// Shared in-memory fakes standing in for the embedding model and the vector
// database.

type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, text)
	return []float32{float32(len(text)), 1}, nil
}

type fakeRow struct {
	id   string
	meta map[string]any
	doc  string
}

type fakeCollection struct {
	rows   []fakeRow
	addErr error
}

func (f *fakeCollection) Add(ctx context.Context, params chroma.AddParams) error {
	if f.addErr != nil {
		return f.addErr
	}
	for i, id := range params.IDs {
		f.rows = append(f.rows, fakeRow{
			id:   id,
			meta: params.Metadatas[i],
			doc:  params.Documents[i],
		})
	}
	return nil
}

func (f *fakeCollection) Get(ctx context.Context, limit int) (*chroma.GetResult, error) {
	res := &chroma.GetResult{}
	for i, row := range f.rows {
		if limit > 0 && i >= limit {
			break
		}
		res.IDs = append(res.IDs, row.id)
		res.Metadatas = append(res.Metadatas, row.meta)
		res.Documents = append(res.Documents, row.doc)
	}
	return res, nil
}

func (f *fakeCollection) Query(ctx context.Context, embedding []float32, nResults int) (*chroma.QueryResult, error) {
	res := &chroma.QueryResult{}
	for i, row := range f.rows {
		if i >= nResults {
			break
		}
		res.IDs = append(res.IDs, row.id)
		res.Metadatas = append(res.Metadatas, row.meta)
		res.Documents = append(res.Documents, row.doc)
		res.Distances = append(res.Distances, float64(i))
	}
	return res, nil
}

func (f *fakeCollection) Delete(ctx context.Context, ids []string) ([]string, error) {
	var deleted []string
	var kept []fakeRow
	for _, row := range f.rows {
		removed := false
		for _, id := range ids {
			if row.id == id {
				removed = true
				break
			}
		}
		if removed {
			deleted = append(deleted, row.id)
		} else {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return deleted, nil
}

type fakeProvider struct {
	col     *fakeCollection
	ensures int
	err     error
}

func (f *fakeProvider) EnsureCollection(ctx context.Context, name string) (VectorCollection, error) {
	f.ensures++
	if f.err != nil {
		return nil, f.err
	}
	return f.col, nil
}

func newFakeStores() (*fakeProvider, *fakeEmbedder) {
	return &fakeProvider{col: &fakeCollection{}}, &fakeEmbedder{}
}

var errBoom = fmt.Errorf("boom")
