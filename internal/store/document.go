package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

// The document builders below define the text that gets embedded AND stored
// verbatim as each row's retrievable document. Their exact shape must stay
// stable: changing it would make new embeddings inconsistent with vectors
// already in the collection.

// ReceiptDocument renders a receipt as one sentence-like summary:
// merchant, date, a comma-joined item list and the total.
func ReceiptDocument(r domain.Receipt) string {
	parts := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		parts = append(parts, fmt.Sprintf("%s (%s): $%s", item.Name, item.Category, formatAmount(item.TotalPrice)))
	}
	return fmt.Sprintf("Receipt from %s on %s. Items: %s. Total: $%s",
		r.MerchantName, r.Date, strings.Join(parts, ", "), formatAmount(r.Total))
}

// TransactionDocument renders a bank transaction as one summary line:
// description, date, category and the signed amount with currency.
func TransactionDocument(t domain.BankTransaction) string {
	return fmt.Sprintf("%s on %s. Category: %s. Amount: %s %s",
		t.Description, t.Date, t.Category, formatAmount(t.Amount), t.Currency)
}

// formatAmount renders a monetary value in its minimal decimal form
// ("10.5", not "10.50"), matching the documents already stored.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
