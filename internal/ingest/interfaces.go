package ingest

import (
	"context"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

// Extractor is the boundary to the external AI extraction service. It is
// consumed as a black box: given image bytes or statement text it returns a
// structured draft or fails. This module never implements it.
type Extractor interface {
	// ExtractReceipt parses a receipt image into a draft record.
	ExtractReceipt(ctx context.Context, image []byte, mimeType string) (*domain.ReceiptDraft, error)

	// ExtractStatement parses raw bank-statement text into a draft
	// statement with all of its transactions.
	ExtractStatement(ctx context.Context, text string) (*domain.StatementDraft, error)
}

// ReceiptSaver is the slice of the receipt store the ingester uses.
type ReceiptSaver interface {
	Save(ctx context.Context, rec domain.Receipt, imageURL, imageHash string) (*domain.StoredReceipt, error)
	FindByImageHash(ctx context.Context, imageHash string) (*domain.StoredReceipt, error)
}

// TransactionSaver is the slice of the transaction store the ingester uses.
type TransactionSaver interface {
	SaveBatch(ctx context.Context, txns []domain.BankTransaction, statementID string) ([]string, error)
}

// BlobUploader stores raw image bytes and returns a durable reference.
type BlobUploader interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
