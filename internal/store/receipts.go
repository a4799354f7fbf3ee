package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
	"github.com/dvloznov/receipt-scanner/internal/domain"
)

const (
	// ReceiptsCollection is the logical collection holding receipt rows.
	ReceiptsCollection = "receipts"

	// aggregationCap bounds the full-corpus fetch behind summaries. The
	// expected volume is small (single-tenant, human-paced uploads); this
	// is a documented limitation, not a targeted index.
	aggregationCap = 1000

	dateLayout = "2006-01-02"

	// spendingWindowDays is the trailing window of SpendingOverTime.
	spendingWindowDays = 30
)

// ReceiptStore persists receipts in the vector database, one embedded row
// per receipt. It holds no mutable state between calls; every operation
// obtains a fresh collection handle.
type ReceiptStore struct {
	provider CollectionProvider
	embedder Embedder
}

// NewReceiptStore builds a ReceiptStore on top of a collection provider and
// an embedding client.
func NewReceiptStore(provider CollectionProvider, embedder Embedder) *ReceiptStore {
	return &ReceiptStore{provider: provider, embedder: embedder}
}

// Save assigns a fresh id, embeds the receipt's summary text and writes one
// row. imageURL and imageHash are optional and may be empty. The returned
// record is fully hydrated; an existing id is never mutated.
func (s *ReceiptStore) Save(ctx context.Context, rec domain.Receipt, imageURL, imageHash string) (*domain.StoredReceipt, error) {
	col, err := s.provider.EnsureCollection(ctx, ReceiptsCollection)
	if err != nil {
		return nil, fmt.Errorf("Save: ensuring collection: %w", err)
	}

	doc := ReceiptDocument(rec)
	embedding, err := s.embedder.Embed(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("Save: embedding receipt text: %w", err)
	}

	id := NewRecordID("receipt")
	createdAt := time.Now().UTC()

	err = col.Add(ctx, chroma.AddParams{
		IDs:        []string{id},
		Embeddings: [][]float32{embedding},
		Metadatas:  []map[string]any{receiptMetadata(rec, imageURL, imageHash, createdAt)},
		Documents:  []string{doc},
	})
	if err != nil {
		return nil, fmt.Errorf("Save: writing row: %w", err)
	}

	return &domain.StoredReceipt{
		Receipt:   rec,
		ID:        id,
		CreatedAt: createdAt,
		ImageURL:  imageURL,
		ImageHash: imageHash,
	}, nil
}

// FindByImageHash linear-scans the collection's metadata for an exact
// content-hash match and returns the first hit, or nil when no receipt with
// that hash exists. Absence is not an error. The scan is bounded by the
// same expected-small-volume assumption as the summaries.
func (s *ReceiptStore) FindByImageHash(ctx context.Context, imageHash string) (*domain.StoredReceipt, error) {
	if imageHash == "" {
		return nil, nil
	}

	col, err := s.provider.EnsureCollection(ctx, ReceiptsCollection)
	if err != nil {
		return nil, fmt.Errorf("FindByImageHash: ensuring collection: %w", err)
	}

	res, err := col.Get(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("FindByImageHash: fetching rows: %w", err)
	}

	for i, id := range res.IDs {
		if i >= len(res.Metadatas) {
			break
		}
		if metaString(res.Metadatas[i], "imageHash") == imageHash {
			rec := decodeReceipt(id, res.Metadatas[i])
			return &rec, nil
		}
	}
	return nil, nil
}

// List returns up to limit receipts, newest first by creation time.
func (s *ReceiptStore) List(ctx context.Context, limit int) ([]domain.StoredReceipt, error) {
	col, err := s.provider.EnsureCollection(ctx, ReceiptsCollection)
	if err != nil {
		return nil, fmt.Errorf("List: ensuring collection: %w", err)
	}

	res, err := col.Get(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("List: fetching rows: %w", err)
	}

	receipts := decodeReceipts(res.IDs, res.Metadatas)
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})
	return receipts, nil
}

// Search embeds the query text and returns up to limit receipts ranked by
// embedding-space similarity. There is no similarity floor: if any records
// exist, up to limit of them come back however dissimilar.
func (s *ReceiptStore) Search(ctx context.Context, query string, limit int) ([]domain.StoredReceipt, error) {
	col, err := s.provider.EnsureCollection(ctx, ReceiptsCollection)
	if err != nil {
		return nil, fmt.Errorf("Search: ensuring collection: %w", err)
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Search: embedding query: %w", err)
	}

	res, err := col.Query(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("Search: querying: %w", err)
	}

	// Preserve the ranking order returned by the query.
	return decodeReceipts(res.IDs, res.Metadatas), nil
}

// Delete removes a receipt by id. Deleting a nonexistent id is not an
// error; it reports false.
func (s *ReceiptStore) Delete(ctx context.Context, id string) (bool, error) {
	col, err := s.provider.EnsureCollection(ctx, ReceiptsCollection)
	if err != nil {
		return false, fmt.Errorf("Delete: ensuring collection: %w", err)
	}

	deleted, err := col.Delete(ctx, []string{id})
	if err != nil {
		return false, fmt.Errorf("Delete: deleting row: %w", err)
	}
	return len(deleted) > 0, nil
}

// SummaryByCategory flattens every line item across all stored receipts and
// rolls them up per category, descending by total spent. Categories with no
// items are omitted, not zero-filled.
func (s *ReceiptStore) SummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	receipts, err := s.List(ctx, aggregationCap)
	if err != nil {
		return nil, fmt.Errorf("SummaryByCategory: %w", err)
	}

	acc := newCategoryAccumulator()
	for _, rec := range receipts {
		for _, item := range rec.Items {
			acc.add(string(item.Category), item.TotalPrice)
		}
	}
	return acc.summaries(), nil
}

// SpendingOverTime sums receipt totals per date over the trailing 30 days,
// ascending by date. A receipt dated exactly on the window boundary is
// included.
func (s *ReceiptStore) SpendingOverTime(ctx context.Context) ([]DailySpend, error) {
	receipts, err := s.List(ctx, aggregationCap)
	if err != nil {
		return nil, fmt.Errorf("SpendingOverTime: %w", err)
	}
	return spendingOverTime(receipts, time.Now().UTC()), nil
}

// spendingOverTime is the pure fold behind SpendingOverTime. The cutoff is
// compared as an ISO date string, so time-of-day never excludes a receipt
// dated exactly 30 days ago.
func spendingOverTime(receipts []domain.StoredReceipt, now time.Time) []DailySpend {
	cutoff := now.AddDate(0, 0, -spendingWindowDays).Format(dateLayout)

	totals := dailyTotals{}
	for _, rec := range receipts {
		if rec.Date >= cutoff {
			totals.add(rec.Date, rec.Total)
		}
	}
	return totals.series()
}

func decodeReceipts(ids []string, metadatas []map[string]any) []domain.StoredReceipt {
	receipts := make([]domain.StoredReceipt, 0, len(ids))
	for i, id := range ids {
		var meta map[string]any
		if i < len(metadatas) {
			meta = metadatas[i]
		}
		receipts = append(receipts, decodeReceipt(id, meta))
	}
	return receipts
}
