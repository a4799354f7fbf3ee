package store

import (
	"testing"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

func TestReceiptDocument_ExactShape(t *testing.T) {
	rec := domain.Receipt{
		MerchantName: "Whole Foods",
		Date:         "2026-08-15",
		Items: []domain.LineItem{
			{Name: "Avocado", TotalPrice: 2.5, Category: domain.ItemGroceries},
			{Name: "Sushi Box", TotalPrice: 12, Category: domain.ItemDining},
		},
		Total: 14.5,
	}

	want := "Receipt from Whole Foods on 2026-08-15. Items: Avocado (groceries): $2.5, Sushi Box (dining): $12. Total: $14.5"
	if got := ReceiptDocument(rec); got != want {
		t.Errorf("ReceiptDocument:\n got: %s\nwant: %s", got, want)
	}
}

func TestReceiptDocument_NoItems(t *testing.T) {
	rec := domain.Receipt{
		MerchantName: "Parking Meter",
		Date:         "2026-08-15",
		Items:        []domain.LineItem{},
		Total:        4,
	}

	want := "Receipt from Parking Meter on 2026-08-15. Items: . Total: $4"
	if got := ReceiptDocument(rec); got != want {
		t.Errorf("ReceiptDocument = %q, want %q", got, want)
	}
}

func TestTransactionDocument_ExactShape(t *testing.T) {
	txn := domain.BankTransaction{
		Date:        "2026-08-12",
		Description: "TFL TRAVEL CHARGE",
		Amount:      -5.6,
		Category:    domain.TxnTransportation,
		Currency:    "GBP",
	}

	want := "TFL TRAVEL CHARGE on 2026-08-12. Category: transportation. Amount: -5.6 GBP"
	if got := TransactionDocument(txn); got != want {
		t.Errorf("TransactionDocument:\n got: %s\nwant: %s", got, want)
	}
}

func TestFormatAmount_MinimalForm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{10.5, "10.5"},
		{10.50, "10.5"},
		{0, "0"},
		{-20.25, "-20.25"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRecordID_PrefixAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewRecordID("receipt")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
