package store

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

func TestSummaryByCategory_FlattensItems(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	rec := domain.Receipt{
		MerchantName: "Mixed Basket",
		Date:         "2026-08-01",
		Items: []domain.LineItem{
			{Name: "Apples", Quantity: 1, TotalPrice: 10, Category: domain.ItemGroceries},
			{Name: "Lunch", Quantity: 1, TotalPrice: 5, Category: domain.ItemDining},
			{Name: "Bread", Quantity: 1, TotalPrice: 3, Category: domain.ItemGroceries},
		},
		Total:         18,
		PaymentMethod: domain.PayOther,
		Currency:      "USD",
	}
	if _, err := s.Save(ctx, rec, "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.SummaryByCategory(ctx)
	if err != nil {
		t.Fatalf("SummaryByCategory failed: %v", err)
	}

	want := []CategorySummary{
		{Category: "groceries", TotalSpent: 13, Count: 2},
		{Category: "dining", TotalSpent: 5, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSpendingOverTime_WindowAndOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(dateLayout)
	}

	receipts := []domain.StoredReceipt{
		{Receipt: domain.Receipt{Date: day(-31), Total: 99}},  // excluded: outside window
		{Receipt: domain.Receipt{Date: day(-30), Total: 10}},  // included: exactly on the boundary
		{Receipt: domain.Receipt{Date: day(-1), Total: 7}},    // included
		{Receipt: domain.Receipt{Date: day(-1), Total: 3}},    // same day, summed
		{Receipt: domain.Receipt{Date: day(0), Total: 2.5}},   // included: today
	}

	got := spendingOverTime(receipts, now)

	want := []DailySpend{
		{Date: day(-30), Total: 10},
		{Date: day(-1), Total: 10},
		{Date: day(0), Total: 2.5},
	}
	if len(got) != len(want) {
		t.Fatalf("series = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Ascending lexicographic order.
	for i := 1; i < len(got); i++ {
		if got[i-1].Date >= got[i].Date {
			t.Errorf("dates out of order: %q before %q", got[i-1].Date, got[i].Date)
		}
	}
}

func TestCategoryAccumulator_SortsDescending(t *testing.T) {
	acc := newCategoryAccumulator()
	acc.add("shopping", 1)
	acc.add("utilities", 40)
	acc.add("shopping", 2)
	acc.add("healthcare", 15)

	got := acc.summaries()
	if len(got) != 3 {
		t.Fatalf("summaries = %+v", got)
	}
	if got[0].Category != "utilities" || got[1].Category != "healthcare" || got[2].Category != "shopping" {
		t.Errorf("order = %s, %s, %s", got[0].Category, got[1].Category, got[2].Category)
	}
	if got[2].TotalSpent != 3 || got[2].Count != 2 {
		t.Errorf("shopping row = %+v, want total 3 count 2", got[2])
	}
}
