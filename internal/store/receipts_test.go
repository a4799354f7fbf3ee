package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dvloznov/receipt-scanner/internal/domain"
)

func sampleReceipt() domain.Receipt {
	return domain.Receipt{
		MerchantName:    "Tesco Express",
		MerchantAddress: "12 High Street",
		Date:            "2026-08-01",
		Time:            "18:45",
		Items: []domain.LineItem{
			{Name: "Milk", Quantity: 1, UnitPrice: 1.2, TotalPrice: 1.2, Category: domain.ItemGroceries},
			{Name: "Pizza", Quantity: 2, UnitPrice: 3, TotalPrice: 6, Category: domain.ItemDining},
		},
		Subtotal:      7.2,
		Tax:           0.5,
		Total:         7.7,
		PaymentMethod: domain.PayDebit,
		Currency:      "GBP",
	}
}

func TestSave_RoundTripThroughMetadata(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	stored, err := s.Save(ctx, sampleReceipt(), "gs://bucket/img.jpg", "hash-1")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if stored.ID == "" || !strings.HasPrefix(stored.ID, "receipt_") {
		t.Errorf("ID = %q, want receipt_ prefix", stored.ID)
	}
	if stored.ImageHash != "hash-1" || stored.ImageURL != "gs://bucket/img.jpg" {
		t.Errorf("image fields not hydrated: %+v", stored)
	}
	if len(embedder.texts) != 1 {
		t.Fatalf("embedder called %d times, want 1", len(embedder.texts))
	}

	// Read back via the hash path: fields must survive the flat-metadata
	// serialization, items included.
	found, err := s.FindByImageHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("FindByImageHash failed: %v", err)
	}
	if found == nil {
		t.Fatal("FindByImageHash returned nil for a saved hash")
	}
	if found.ID != stored.ID {
		t.Errorf("ID = %q, want %q", found.ID, stored.ID)
	}
	want := sampleReceipt()
	if found.MerchantName != want.MerchantName ||
		found.MerchantAddress != want.MerchantAddress ||
		found.Date != want.Date ||
		found.Time != want.Time ||
		found.Subtotal != want.Subtotal ||
		found.Tax != want.Tax ||
		found.Total != want.Total ||
		found.PaymentMethod != want.PaymentMethod ||
		found.Currency != want.Currency {
		t.Errorf("scalar fields did not round-trip: %+v", found)
	}
	if len(found.Items) != len(want.Items) {
		t.Fatalf("items length = %d, want %d", len(found.Items), len(want.Items))
	}
	for i, item := range found.Items {
		if item.Category != want.Items[i].Category || item.Name != want.Items[i].Name {
			t.Errorf("item %d did not round-trip: %+v", i, item)
		}
	}
}

func TestFindByImageHash_Absent(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)

	found, err := s.FindByImageHash(context.Background(), "no-such-hash")
	if err != nil {
		t.Fatalf("FindByImageHash failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for unknown hash, got %+v", found)
	}
}

func TestList_NewestFirst(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	first, err := s.Save(ctx, sampleReceipt(), "", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The second save must sort ahead of the first; write its row with a
	// later createdAt directly to avoid sleeping in the test.
	rec := sampleReceipt()
	rec.MerchantName = "Later Shop"
	provider.col.rows = append(provider.col.rows, fakeRow{
		id:   NewRecordID("receipt"),
		meta: receiptMetadata(rec, "", "", time.Now().UTC().Add(time.Hour)),
		doc:  ReceiptDocument(rec),
	})

	got, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d receipts, want 2", len(got))
	}
	if got[0].MerchantName != "Later Shop" {
		t.Errorf("newest receipt = %q, want Later Shop", got[0].MerchantName)
	}
	if got[1].ID != first.ID {
		t.Errorf("oldest receipt = %q, want %q", got[1].ID, first.ID)
	}
}

func TestList_SingleRecord(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	stored, err := s.Save(ctx, sampleReceipt(), "", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != stored.ID {
		t.Errorf("List(1) = %+v, want the sole saved record", got)
	}
}

func TestSearch_EmbedsQueryOnce(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	if _, err := s.Save(ctx, sampleReceipt(), "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	embedder.texts = nil

	got, err := s.Search(ctx, "groceries at tesco", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].MerchantName != "Tesco Express" {
		t.Errorf("Search = %+v", got)
	}
	if len(embedder.texts) != 1 || embedder.texts[0] != "groceries at tesco" {
		t.Errorf("query embedding calls = %v, want exactly the query text", embedder.texts)
	}
}

func TestDelete_Semantics(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)
	ctx := context.Background()

	ok, err := s.Delete(ctx, "receipt_never_stored")
	if err != nil {
		t.Fatalf("Delete of unknown id errored: %v", err)
	}
	if ok {
		t.Error("Delete of unknown id = true, want false")
	}

	stored, err := s.Save(ctx, sampleReceipt(), "", "dup-hash")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err = s.Delete(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Error("Delete of stored id = false, want true")
	}

	found, err := s.FindByImageHash(ctx, "dup-hash")
	if err != nil {
		t.Fatalf("FindByImageHash failed: %v", err)
	}
	if found != nil {
		t.Error("deleted receipt still surfaces via FindByImageHash")
	}
	listed, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("deleted receipt still listed: %+v", listed)
	}
}

func TestSave_PropagatesEmbeddingFailure(t *testing.T) {
	provider, _ := newFakeStores()
	s := NewReceiptStore(provider, &fakeEmbedder{err: errBoom})

	if _, err := s.Save(context.Background(), sampleReceipt(), "", ""); err == nil {
		t.Error("Save with failing embedder should error")
	}
}

func TestDecodeReceipt_MalformedMetadataDegrades(t *testing.T) {
	provider, embedder := newFakeStores()
	s := NewReceiptStore(provider, embedder)

	// One corrupt row: unparseable itemsJson and amounts, missing keys.
	provider.col.rows = append(provider.col.rows, fakeRow{
		id: "receipt_corrupt",
		meta: map[string]any{
			"merchantName": "Half There",
			"itemsJson":    "{not json",
			"total":        "NaNish",
		},
	})
	// And one healthy row after it.
	rec := sampleReceipt()
	provider.col.rows = append(provider.col.rows, fakeRow{
		id:   "receipt_ok",
		meta: receiptMetadata(rec, "", "", time.Now().UTC()),
	})

	got, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed despite corrupt row: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d rows, want 2 (corrupt row must not abort the set)", len(got))
	}

	var corrupt domain.StoredReceipt
	for _, r := range got {
		if r.ID == "receipt_corrupt" {
			corrupt = r
		}
	}
	if corrupt.MerchantName != "Half There" {
		t.Errorf("surviving field lost: %+v", corrupt)
	}
	if corrupt.Items == nil || len(corrupt.Items) != 0 {
		t.Errorf("corrupt itemsJson should degrade to empty items, got %+v", corrupt.Items)
	}
	if corrupt.Total != 0 || corrupt.Subtotal != 0 {
		t.Errorf("unparseable amounts should degrade to 0: %+v", corrupt)
	}
	if corrupt.PaymentMethod != domain.PayOther {
		t.Errorf("missing paymentMethod should degrade to other, got %q", corrupt.PaymentMethod)
	}
	if corrupt.Currency != domain.DefaultReceiptCurrency {
		t.Errorf("missing currency should degrade to %q, got %q", domain.DefaultReceiptCurrency, corrupt.Currency)
	}
}
