package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/receipt-scanner/internal/chroma"
	"github.com/dvloznov/receipt-scanner/internal/embedding"
	"github.com/dvloznov/receipt-scanner/internal/logger"
	"github.com/dvloznov/receipt-scanner/internal/store"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		runList(log)
	case "search":
		runSearch(log)
	case "summary":
		runSummary(log)
	case "spending":
		runSpending(log)
	case "transactions":
		runTransactions(log)
	case "txn-summary":
		runTxnSummary(log)
	case "delete":
		runDelete(log)
	case "delete-txn":
		runDeleteTxn(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Receipt Scanner CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  list          List stored receipts, newest first")
	fmt.Println("  search        Semantic search over receipts")
	fmt.Println("  summary       Spending by item category across receipts")
	fmt.Println("  spending      Daily spending over the last 30 days")
	fmt.Println("  transactions  List stored bank transactions, newest first")
	fmt.Println("  txn-summary   Spending by category across bank transactions")
	fmt.Println("  delete        Delete a receipt by ID")
	fmt.Println("  delete-txn    Delete a bank transaction by ID")
	fmt.Println("  help          Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func newReceiptStore() *store.ReceiptStore {
	provider := store.NewChromaProvider(chroma.NewClient(""))
	return store.NewReceiptStore(provider, embedding.FromEnv())
}

func newTransactionStore() *store.TransactionStore {
	provider := store.NewChromaProvider(chroma.NewClient(""))
	return store.NewTransactionStore(provider, embedding.FromEnv())
}

func newCommandContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	return logger.WithContext(ctx, log), cancel
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Maximum number of receipts to show")
	fs.Parse(os.Args[2:])

	ctx, cancel := newCommandContext(log)
	defer cancel()

	receipts, err := newReceiptStore().List(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list receipts")
	}

	fmt.Printf("=== Receipts (%d) ===\n", len(receipts))
	for _, rec := range receipts {
		fmt.Printf("\n%s\n", rec.ID)
		fmt.Printf("  Merchant: %s\n", rec.MerchantName)
		fmt.Printf("  Date:     %s\n", rec.Date)
		fmt.Printf("  Total:    %s %.2f\n", rec.Currency, rec.Total)
		fmt.Printf("  Items:    %d\n", len(rec.Items))
	}
}

func runSearch(log zerolog.Logger) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("limit", 10, "Maximum number of results")
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		log.Fatal().Msg("Usage: cli search [-limit N] <query>")
	}
	query := fs.Arg(0)

	ctx, cancel := newCommandContext(log)
	defer cancel()

	receipts, err := newReceiptStore().Search(ctx, query, *limit)
	if err != nil {
		log.Fatal().Err(err).Str("query", query).Msg("Search failed")
	}

	fmt.Printf("=== Results for %q (%d) ===\n", query, len(receipts))
	for i, rec := range receipts {
		fmt.Printf("\n%d. %s on %s: %s %.2f (%s)\n",
			i+1, rec.MerchantName, rec.Date, rec.Currency, rec.Total, rec.ID)
	}
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx, cancel := newCommandContext(log)
	defer cancel()

	rows, err := newReceiptStore().SummaryByCategory(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build category summary")
	}

	fmt.Println("=== Spending by category ===")
	for _, row := range rows {
		fmt.Printf("  %-14s %10.2f  (%d items)\n", row.Category, row.TotalSpent, row.Count)
	}
}

func runSpending(log zerolog.Logger) {
	fs := flag.NewFlagSet("spending", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx, cancel := newCommandContext(log)
	defer cancel()

	rows, err := newReceiptStore().SpendingOverTime(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build spending series")
	}

	fmt.Println("=== Daily spending, last 30 days ===")
	for _, row := range rows {
		fmt.Printf("  %s  %10.2f\n", row.Date, row.Total)
	}
}

func runTransactions(log zerolog.Logger) {
	fs := flag.NewFlagSet("transactions", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Maximum number of transactions to show")
	fs.Parse(os.Args[2:])

	ctx, cancel := newCommandContext(log)
	defer cancel()

	txns, err := newTransactionStore().List(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	fmt.Printf("=== Transactions (%d) ===\n", len(txns))
	for _, txn := range txns {
		fmt.Printf("\n%s\n", txn.ID)
		fmt.Printf("  Date:        %s\n", txn.Date)
		fmt.Printf("  Description: %s\n", txn.Description)
		fmt.Printf("  Amount:      %s %.2f\n", txn.Currency, txn.Amount)
		fmt.Printf("  Category:    %s\n", txn.Category)
		if txn.StatementID != "" {
			fmt.Printf("  Statement:   %s\n", txn.StatementID)
		}
	}
}

func runTxnSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("txn-summary", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx, cancel := newCommandContext(log)
	defer cancel()

	rows, err := newTransactionStore().SummaryByCategory(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build transaction summary")
	}

	fmt.Println("=== Transaction spending by category ===")
	for _, row := range rows {
		fmt.Printf("  %-14s %10.2f  (%d transactions)\n", row.Category, row.TotalSpent, row.Count)
	}
}

func runDelete(log zerolog.Logger) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		log.Fatal().Msg("Usage: cli delete <receipt-id>")
	}
	id := fs.Arg(0)

	ctx, cancel := newCommandContext(log)
	defer cancel()

	deleted, err := newReceiptStore().Delete(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Str("receipt_id", id).Msg("Delete failed")
	}
	if !deleted {
		fmt.Printf("No receipt with ID %s\n", id)
		return
	}
	fmt.Printf("Deleted receipt %s\n", id)
}

func runDeleteTxn(log zerolog.Logger) {
	fs := flag.NewFlagSet("delete-txn", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		log.Fatal().Msg("Usage: cli delete-txn <transaction-id>")
	}
	id := fs.Arg(0)

	ctx, cancel := newCommandContext(log)
	defer cancel()

	deleted, err := newTransactionStore().Delete(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Str("transaction_id", id).Msg("Delete failed")
	}
	if !deleted {
		fmt.Printf("No transaction with ID %s\n", id)
		return
	}
	fmt.Printf("Deleted transaction %s\n", id)
}
