package chroma

import (
	"context"
	"fmt"
	"net/http"
)

// Collection is a handle to one named collection. Handles are cheap and
// short-lived; obtain a fresh one via EnsureCollection per operation.
type Collection struct {
	client *Client
	ID     string
	Name   string
}

// AddParams is one batch of rows to insert. All slices must have the same
// length. Metadata values are flat string-keyed scalars; this module writes
// every value as a string and parses it back on read.
type AddParams struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Metadatas  []map[string]any `json:"metadatas"`
	Documents  []string         `json:"documents"`
}

// GetResult is the decoded response of a bulk fetch. Slices are parallel:
// Metadatas[i] and Documents[i] belong to IDs[i].
type GetResult struct {
	IDs       []string         `json:"ids"`
	Metadatas []map[string]any `json:"metadatas"`
	Documents []string         `json:"documents"`
}

// QueryResult is the decoded response of a nearest-neighbor query, already
// flattened to the single query vector this module sends. Rows are ordered
// by ascending distance.
type QueryResult struct {
	IDs       []string
	Metadatas []map[string]any
	Documents []string
	Distances []float64
}

// Add inserts rows with caller-supplied embeddings.
func (col *Collection) Add(ctx context.Context, params AddParams) error {
	if len(params.IDs) == 0 {
		return nil
	}
	err := col.client.doRequest(ctx, http.MethodPost, "/collections/"+col.ID+"/add", params, nil)
	if err != nil {
		return fmt.Errorf("Add to %q: %w", col.Name, err)
	}
	return nil
}

// Get fetches up to limit rows with their metadata and documents. A limit of
// zero or less fetches the whole collection.
func (col *Collection) Get(ctx context.Context, limit int) (*GetResult, error) {
	body := map[string]any{
		"include": []string{"metadatas", "documents"},
	}
	if limit > 0 {
		body["limit"] = limit
	}

	var res GetResult
	if err := col.client.doRequest(ctx, http.MethodPost, "/collections/"+col.ID+"/get", body, &res); err != nil {
		return nil, fmt.Errorf("Get from %q: %w", col.Name, err)
	}
	return &res, nil
}

type queryResponse struct {
	IDs       [][]string         `json:"ids"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Documents [][]string         `json:"documents"`
	Distances [][]float64        `json:"distances"`
}

// Query runs a nearest-neighbor search for one query embedding and returns
// up to nResults rows. There is no similarity floor: dissimilar rows still
// rank, just last.
func (col *Collection) Query(ctx context.Context, embedding []float32, nResults int) (*QueryResult, error) {
	body := map[string]any{
		"query_embeddings": [][]float32{embedding},
		"n_results":        nResults,
		"include":          []string{"metadatas", "documents", "distances"},
	}

	var resp queryResponse
	if err := col.client.doRequest(ctx, http.MethodPost, "/collections/"+col.ID+"/query", body, &resp); err != nil {
		return nil, fmt.Errorf("Query %q: %w", col.Name, err)
	}

	res := &QueryResult{}
	if len(resp.IDs) > 0 {
		res.IDs = resp.IDs[0]
	}
	if len(resp.Metadatas) > 0 {
		res.Metadatas = resp.Metadatas[0]
	}
	if len(resp.Documents) > 0 {
		res.Documents = resp.Documents[0]
	}
	if len(resp.Distances) > 0 {
		res.Distances = resp.Distances[0]
	}
	return res, nil
}

// Delete removes rows by id and returns the ids the server actually
// removed. Deleting an unknown id is not an error; it just comes back
// absent from the result.
func (col *Collection) Delete(ctx context.Context, ids []string) ([]string, error) {
	body := map[string]any{"ids": ids}

	var deleted []string
	if err := col.client.doRequest(ctx, http.MethodPost, "/collections/"+col.ID+"/delete", body, &deleted); err != nil {
		return nil, fmt.Errorf("Delete from %q: %w", col.Name, err)
	}
	return deleted, nil
}
