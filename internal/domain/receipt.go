package domain

import "time"

// LineItem is one printed line on a receipt. The JSON tags define the wire
// shape of the itemsJson metadata field, so they must stay stable across
// writes and reads.
type LineItem struct {
	Name       string       `json:"name"`
	Quantity   float64      `json:"quantity"`
	UnitPrice  float64      `json:"unitPrice"`
	TotalPrice float64      `json:"totalPrice"`
	Category   ItemCategory `json:"category"`
}

// Receipt is a fully normalized receipt as produced by NormalizeReceipt.
// Every defaulted field is populated; Items is never nil (but may be empty).
type Receipt struct {
	MerchantName    string        `json:"merchantName"`
	MerchantAddress string        `json:"merchantAddress"`
	Date            string        `json:"date"` // ISO YYYY-MM-DD
	Time            string        `json:"time"` // HH:MM or ""
	Items           []LineItem    `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Total           float64       `json:"total"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Currency        string        `json:"currency"`
}

// StoredReceipt is a Receipt that has been persisted. The ID is assigned at
// creation, immutable, and never reused after deletion.
type StoredReceipt struct {
	Receipt
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ImageHash string    `json:"imageHash,omitempty"`
}
