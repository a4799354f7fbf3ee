// Package ingest orchestrates the write path: normalize an extracted draft,
// fingerprint the upload, detect duplicates, stash the image and persist the
// record.
package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/receipt-scanner/internal/checksum"
	"github.com/dvloznov/receipt-scanner/internal/domain"
	"github.com/dvloznov/receipt-scanner/internal/store"
)

// Ingester wires the stores, the optional image blob store and a logger
// into one write-path service.
type Ingester struct {
	receipts ReceiptSaver
	txns     TransactionSaver
	blobs    BlobUploader // nil disables image uploads
	log      zerolog.Logger
}

// New builds an Ingester. blobs may be nil when no bucket is configured;
// receipts are then saved without an image reference.
func New(receipts ReceiptSaver, txns TransactionSaver, blobs BlobUploader, log zerolog.Logger) *Ingester {
	return &Ingester{receipts: receipts, txns: txns, blobs: blobs, log: log}
}

// ReceiptResult reports the outcome of a receipt ingestion. When Duplicate
// is true, Receipt is the previously stored record and nothing was written.
type ReceiptResult struct {
	Receipt   *domain.StoredReceipt
	Duplicate bool
}

// Receipt normalizes the draft, hashes the image bytes for duplicate
// detection, uploads the image when a blob store is configured, and saves
// the record. The duplicate check and the save are not atomic: two
// concurrent uploads of the same image can both pass the check and both be
// saved. Accepted for human-paced, single-user uploads.
func (ing *Ingester) Receipt(ctx context.Context, draft domain.ReceiptDraft, image []byte, mimeType string) (*ReceiptResult, error) {
	rec, err := domain.NormalizeReceipt(draft)
	if err != nil {
		return nil, fmt.Errorf("Receipt: %w", err)
	}

	var imageHash, imageURL string
	if len(image) > 0 {
		imageHash = checksum.Hash(image)

		existing, err := ing.receipts.FindByImageHash(ctx, imageHash)
		if err != nil {
			return nil, fmt.Errorf("Receipt: duplicate check: %w", err)
		}
		if existing != nil {
			ing.log.Info().
				Str("receipt_id", existing.ID).
				Str("image_hash", imageHash).
				Msg("Duplicate upload detected, returning existing receipt")
			return &ReceiptResult{Receipt: existing, Duplicate: true}, nil
		}

		if ing.blobs != nil {
			objectName := "receipts/" + imageHash + extensionFor(mimeType)
			imageURL, err = ing.blobs.Upload(ctx, objectName, image, mimeType)
			if err != nil {
				return nil, fmt.Errorf("Receipt: uploading image: %w", err)
			}
		}
	}

	stored, err := ing.receipts.Save(ctx, rec, imageURL, imageHash)
	if err != nil {
		return nil, fmt.Errorf("Receipt: %w", err)
	}

	ing.log.Info().
		Str("receipt_id", stored.ID).
		Str("merchant", stored.MerchantName).
		Float64("total", stored.Total).
		Msg("Receipt ingested")
	return &ReceiptResult{Receipt: stored}, nil
}

// Statement normalizes every transaction in the draft and batch-saves them
// under one statement id. An empty statementID gets a generated one so the
// batch stays groupable. The save is best-effort, not all-or-nothing: ids
// persisted before a mid-batch failure remain persisted.
func (ing *Ingester) Statement(ctx context.Context, draft domain.StatementDraft, statementID string) ([]string, error) {
	txns := make([]domain.BankTransaction, 0, len(draft.Transactions))
	for i, td := range draft.Transactions {
		txn, err := domain.NormalizeTransaction(td)
		if err != nil {
			return nil, fmt.Errorf("Statement: transaction %d: %w", i, err)
		}
		txns = append(txns, txn)
	}

	if statementID == "" && len(txns) > 0 {
		statementID = store.NewRecordID("stmt")
	}

	ids, err := ing.txns.SaveBatch(ctx, txns, statementID)
	if err != nil {
		return ids, fmt.Errorf("Statement: %w", err)
	}

	ing.log.Info().
		Str("statement_id", statementID).
		Int("transactions", len(ids)).
		Msg("Statement ingested")
	return ids, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
