package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
	"github.com/dvloznov/receipt-scanner/internal/domain"
)

// TransactionsCollection is the logical collection holding bank
// transaction rows.
const TransactionsCollection = "bank_transactions"

// TransactionStore persists bank transactions extracted from statements.
// Like ReceiptStore it is stateless between calls.
type TransactionStore struct {
	provider CollectionProvider
	embedder Embedder
}

// NewTransactionStore builds a TransactionStore.
func NewTransactionStore(provider CollectionProvider, embedder Embedder) *TransactionStore {
	return &TransactionStore{provider: provider, embedder: embedder}
}

// SaveBatch persists each transaction with a fresh id and returns the
// assigned ids in input order. An empty input is a no-op: no external call
// of any kind is made. Embedding and writing happen sequentially per
// record, and the batch is NOT atomic: on the first failing embed or write
// the ids persisted so far are returned alongside the error.
func (s *TransactionStore) SaveBatch(ctx context.Context, txns []domain.BankTransaction, statementID string) ([]string, error) {
	ids := []string{}
	if len(txns) == 0 {
		return ids, nil
	}

	col, err := s.provider.EnsureCollection(ctx, TransactionsCollection)
	if err != nil {
		return ids, fmt.Errorf("SaveBatch: ensuring collection: %w", err)
	}

	for i, txn := range txns {
		doc := TransactionDocument(txn)
		embedding, err := s.embedder.Embed(ctx, doc)
		if err != nil {
			return ids, fmt.Errorf("SaveBatch: embedding transaction %d: %w", i, err)
		}

		id := NewRecordID("txn")
		err = col.Add(ctx, chroma.AddParams{
			IDs:        []string{id},
			Embeddings: [][]float32{embedding},
			Metadatas:  []map[string]any{transactionMetadata(txn, statementID, time.Now().UTC())},
			Documents:  []string{doc},
		})
		if err != nil {
			return ids, fmt.Errorf("SaveBatch: writing transaction %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// List returns up to limit transactions, newest first by transaction date
// (not creation time), with creation time breaking ties.
func (s *TransactionStore) List(ctx context.Context, limit int) ([]domain.StoredTransaction, error) {
	col, err := s.provider.EnsureCollection(ctx, TransactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("List: ensuring collection: %w", err)
	}

	res, err := col.Get(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("List: fetching rows: %w", err)
	}

	txns := make([]domain.StoredTransaction, 0, len(res.IDs))
	for i, id := range res.IDs {
		var meta map[string]any
		if i < len(res.Metadatas) {
			meta = res.Metadatas[i]
		}
		txns = append(txns, decodeTransaction(id, meta))
	}

	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date > txns[j].Date
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns, nil
}

// SummaryByCategory rolls up spend per category, descending by total.
// Only actual spend contributes: refunds/credits (amount <= 0) and the
// income/transfer flows are excluded by design.
func (s *TransactionStore) SummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	txns, err := s.List(ctx, aggregationCap)
	if err != nil {
		return nil, fmt.Errorf("SummaryByCategory: %w", err)
	}

	acc := newCategoryAccumulator()
	for _, txn := range txns {
		if txn.Amount <= 0 {
			continue
		}
		if txn.Category == domain.TxnIncome || txn.Category == domain.TxnTransfer {
			continue
		}
		acc.add(string(txn.Category), txn.Amount)
	}
	return acc.summaries(), nil
}

// Delete removes a transaction by id; false for an id that was not there.
func (s *TransactionStore) Delete(ctx context.Context, id string) (bool, error) {
	col, err := s.provider.EnsureCollection(ctx, TransactionsCollection)
	if err != nil {
		return false, fmt.Errorf("Delete: ensuring collection: %w", err)
	}

	deleted, err := col.Delete(ctx, []string{id})
	if err != nil {
		return false, fmt.Errorf("Delete: deleting row: %w", err)
	}
	return len(deleted) > 0, nil
}
