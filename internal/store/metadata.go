package store

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

// The vector database only accepts flat string-keyed scalar metadata. Every
// value is written as a string and parsed back symmetrically on each read
// path; the line-item sequence is embedded as one JSON document under
// itemsJson. On read, a malformed or missing field degrades to its
// documented default instead of failing the whole record set.

func receiptMetadata(r domain.Receipt, imageURL, imageHash string, createdAt time.Time) map[string]any {
	itemsJSON, err := json.Marshal(r.Items)
	if err != nil {
		// Items are plain structs; this cannot realistically fail, but an
		// empty list is still a readable row.
		itemsJSON = []byte("[]")
	}
	return map[string]any{
		"merchantName":    r.MerchantName,
		"merchantAddress": r.MerchantAddress,
		"date":            r.Date,
		"time":            r.Time,
		"subtotal":        formatAmount(r.Subtotal),
		"tax":             formatAmount(r.Tax),
		"total":           formatAmount(r.Total),
		"paymentMethod":   string(r.PaymentMethod),
		"currency":        r.Currency,
		"imageUrl":        imageURL,
		"imageHash":       imageHash,
		"createdAt":       createdAt.Format(time.RFC3339),
		"itemsJson":       string(itemsJSON),
	}
}

func decodeReceipt(id string, meta map[string]any) domain.StoredReceipt {
	items := decodeItems(metaString(meta, "itemsJson"))

	currency := metaString(meta, "currency")
	if currency == "" {
		currency = domain.DefaultReceiptCurrency
	}

	return domain.StoredReceipt{
		Receipt: domain.Receipt{
			MerchantName:    metaString(meta, "merchantName"),
			MerchantAddress: metaString(meta, "merchantAddress"),
			Date:            metaString(meta, "date"),
			Time:            metaString(meta, "time"),
			Items:           items,
			Subtotal:        metaFloat(meta, "subtotal"),
			Tax:             metaFloat(meta, "tax"),
			Total:           metaFloat(meta, "total"),
			PaymentMethod:   domain.ParsePaymentMethod(metaString(meta, "paymentMethod")),
			Currency:        currency,
		},
		ID:        id,
		CreatedAt: metaTime(meta, "createdAt"),
		ImageURL:  metaString(meta, "imageUrl"),
		ImageHash: metaString(meta, "imageHash"),
	}
}

func transactionMetadata(t domain.BankTransaction, statementID string, createdAt time.Time) map[string]any {
	return map[string]any{
		"date":        t.Date,
		"description": t.Description,
		"amount":      formatAmount(t.Amount),
		"category":    string(t.Category),
		"currency":    t.Currency,
		"statementId": statementID,
		"createdAt":   createdAt.Format(time.RFC3339),
	}
}

func decodeTransaction(id string, meta map[string]any) domain.StoredTransaction {
	currency := metaString(meta, "currency")
	if currency == "" {
		currency = domain.DefaultTransactionCurrency
	}

	return domain.StoredTransaction{
		BankTransaction: domain.BankTransaction{
			Date:        metaString(meta, "date"),
			Description: metaString(meta, "description"),
			Amount:      metaFloat(meta, "amount"),
			Category:    domain.ParseTransactionCategory(metaString(meta, "category")),
			Currency:    currency,
		},
		ID:          id,
		CreatedAt:   metaTime(meta, "createdAt"),
		StatementID: metaString(meta, "statementId"),
	}
}

// decodeItems parses the embedded line-item document. A corrupt value
// degrades to an empty sequence; unknown item categories fall back to
// "other" at this boundary.
func decodeItems(raw string) []domain.LineItem {
	items := []domain.LineItem{}
	if raw == "" {
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []domain.LineItem{}
	}
	for i := range items {
		items[i].Category = domain.ParseItemCategory(string(items[i].Category))
	}
	return items
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}

func metaFloat(meta map[string]any, key string) float64 {
	if meta == nil {
		return 0
	}
	switch v := meta[key].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		// Rows written before the stringly-typed convention.
		return v
	default:
		return 0
	}
}

func metaTime(meta map[string]any, key string) time.Time {
	t, err := time.Parse(time.RFC3339, metaString(meta, key))
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
