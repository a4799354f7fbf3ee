// Command init-db destructively recreates the vector-database collections.
// Initialization tooling only: existing data in both collections is lost.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
	"github.com/dvloznov/receipt-scanner/internal/logger"
	"github.com/dvloznov/receipt-scanner/internal/store"
)

func main() {
	chromaURL := flag.String("chroma-url", "", "Chroma base URL (or set CHROMA_URL env; default http://localhost:8000)")
	flag.Parse()

	log := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := chroma.NewClient(*chromaURL)

	for _, name := range []string{store.ReceiptsCollection, store.TransactionsCollection} {
		col, err := client.ResetCollection(ctx, name)
		if err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("Failed to reset collection")
		}
		log.Info().Str("collection", col.Name).Str("collection_id", col.ID).Msg("Collection reset")
	}
}
