// Command ingest persists an extracted draft from a local JSON file.
// Extraction itself happens upstream; this command takes its structured
// output, normalizes it and writes it to the vector database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/receipt-scanner/internal/blobstore"
	"github.com/dvloznov/receipt-scanner/internal/chroma"
	"github.com/dvloznov/receipt-scanner/internal/domain"
	"github.com/dvloznov/receipt-scanner/internal/embedding"
	"github.com/dvloznov/receipt-scanner/internal/ingest"
	"github.com/dvloznov/receipt-scanner/internal/logger"
	"github.com/dvloznov/receipt-scanner/internal/store"
)

func main() {
	filePath := flag.String("file", "", "Path to the draft JSON file")
	kind := flag.String("kind", "receipt", "Draft kind: receipt or statement")
	imagePath := flag.String("image", "", "Path to the receipt image (receipt only)")
	statementID := flag.String("statement-id", "", "Statement ID to group transactions under (statement only)")
	chromaURL := flag.String("chroma-url", "", "Chroma base URL (or set CHROMA_URL env)")
	flag.Parse()

	log := logger.New()

	if *filePath == "" {
		log.Fatal().Msg("Error: -file is required")
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("Failed to read draft file")
	}

	provider := store.NewChromaProvider(chroma.NewClient(*chromaURL))
	embedder := embedding.FromEnv()

	var blobs ingest.BlobUploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		blobs = blobstore.New(bucket)
	}

	ing := ingest.New(
		store.NewReceiptStore(provider, embedder),
		store.NewTransactionStore(provider, embedder),
		blobs,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	switch *kind {
	case "receipt":
		ingestReceipt(ctx, ing, raw, *imagePath, log)
	case "statement":
		ingestStatement(ctx, ing, raw, *statementID, log)
	default:
		log.Fatal().Str("kind", *kind).Msg("Unknown kind, want receipt or statement")
	}
}

func ingestReceipt(ctx context.Context, ing *ingest.Ingester, raw []byte, imagePath string, log zerolog.Logger) {
	var draft domain.ReceiptDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		log.Fatal().Err(err).Msg("Failed to decode receipt draft")
	}

	var image []byte
	var mimeType string
	if imagePath != "" {
		var err error
		image, err = os.ReadFile(imagePath)
		if err != nil {
			log.Fatal().Err(err).Str("image", imagePath).Msg("Failed to read image file")
		}
		mimeType = mimeTypeFor(imagePath)
	}

	res, err := ing.Receipt(ctx, draft, image, mimeType)
	if err != nil {
		log.Fatal().Err(err).Msg("Receipt ingestion failed")
	}

	if res.Duplicate {
		fmt.Printf("Duplicate image, existing receipt: %s\n", res.Receipt.ID)
		return
	}
	fmt.Printf("Receipt saved: %s (%s, %s%.2f)\n",
		res.Receipt.ID, res.Receipt.MerchantName, res.Receipt.Currency, res.Receipt.Total)
}

func ingestStatement(ctx context.Context, ing *ingest.Ingester, raw []byte, statementID string, log zerolog.Logger) {
	var draft domain.StatementDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		log.Fatal().Err(err).Msg("Failed to decode statement draft")
	}

	ids, err := ing.Statement(ctx, draft, statementID)
	if err != nil {
		log.Fatal().Err(err).Int("saved", len(ids)).Msg("Statement ingestion failed")
	}

	fmt.Printf("Statement saved: %d transactions\n", len(ids))
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
