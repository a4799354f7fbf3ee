package domain

import "fmt"

// Default currencies applied during normalization when the extraction step
// did not produce one. Receipts and statements come from different sources
// and carry different defaults.
const (
	DefaultReceiptCurrency     = "USD"
	DefaultTransactionCurrency = "GBP"
)

// LineItemDraft is a possibly-partial line item as returned by the
// extraction model. Pointer fields distinguish "absent" from zero values.
type LineItemDraft struct {
	Name       *string  `json:"name"`
	Quantity   *float64 `json:"quantity"`
	UnitPrice  *float64 `json:"unitPrice"`
	TotalPrice *float64 `json:"totalPrice"`
	Category   *string  `json:"category"`
}

// ReceiptDraft is a possibly-partial receipt as returned by the extraction
// model, before defaults are applied.
type ReceiptDraft struct {
	MerchantName    *string         `json:"merchantName"`
	MerchantAddress *string         `json:"merchantAddress"`
	Date            *string         `json:"date"`
	Time            *string         `json:"time"`
	Items           []LineItemDraft `json:"items"`
	Subtotal        *float64        `json:"subtotal"`
	Tax             *float64        `json:"tax"`
	Total           *float64        `json:"total"`
	PaymentMethod   *string         `json:"paymentMethod"`
	Currency        *string         `json:"currency"`
}

// TransactionDraft is a possibly-partial bank transaction as returned by the
// extraction model.
type TransactionDraft struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Currency    *string  `json:"currency"`
}

// StatementPeriodDraft is the optional date range printed on a statement.
type StatementPeriodDraft struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// StatementDraft is a full extracted bank statement: all of its transactions
// plus optional header details.
type StatementDraft struct {
	Transactions    []TransactionDraft    `json:"transactions"`
	StatementPeriod *StatementPeriodDraft `json:"statementPeriod,omitempty"`
	AccountNumber   *string               `json:"accountNumber,omitempty"`
}

// NormalizeReceipt converts a draft into a fully populated Receipt. It is
// pure: defaults are applied for every optional field, and it fails only
// when a required field (merchantName, date, total, items) is structurally
// absent. An empty merchant name or an empty items slice is valid.
func NormalizeReceipt(d ReceiptDraft) (Receipt, error) {
	if d.MerchantName == nil {
		return Receipt{}, fmt.Errorf("NormalizeReceipt: missing required field %q", "merchantName")
	}
	if d.Date == nil {
		return Receipt{}, fmt.Errorf("NormalizeReceipt: missing required field %q", "date")
	}
	if d.Total == nil {
		return Receipt{}, fmt.Errorf("NormalizeReceipt: missing required field %q", "total")
	}
	if d.Items == nil {
		return Receipt{}, fmt.Errorf("NormalizeReceipt: missing required field %q", "items")
	}

	items := make([]LineItem, 0, len(d.Items))
	for i, it := range d.Items {
		item, err := normalizeLineItem(it)
		if err != nil {
			return Receipt{}, fmt.Errorf("NormalizeReceipt: item %d: %w", i, err)
		}
		items = append(items, item)
	}

	return Receipt{
		MerchantName:    *d.MerchantName,
		MerchantAddress: stringOr(d.MerchantAddress, ""),
		Date:            *d.Date,
		Time:            stringOr(d.Time, ""),
		Items:           items,
		Subtotal:        floatOr(d.Subtotal, 0),
		Tax:             floatOr(d.Tax, 0),
		Total:           *d.Total,
		PaymentMethod:   ParsePaymentMethod(stringOr(d.PaymentMethod, "")),
		Currency:        stringOr(d.Currency, DefaultReceiptCurrency),
	}, nil
}

func normalizeLineItem(d LineItemDraft) (LineItem, error) {
	if d.Name == nil {
		return LineItem{}, fmt.Errorf("missing required field %q", "name")
	}
	if d.TotalPrice == nil {
		return LineItem{}, fmt.Errorf("missing required field %q", "totalPrice")
	}
	return LineItem{
		Name:       *d.Name,
		Quantity:   floatOr(d.Quantity, 1),
		UnitPrice:  floatOr(d.UnitPrice, 0),
		TotalPrice: *d.TotalPrice,
		Category:   ParseItemCategory(stringOr(d.Category, "")),
	}, nil
}

// NormalizeTransaction converts a draft into a fully populated
// BankTransaction. Required fields are date, description and amount;
// category falls back to "other" and currency to GBP.
func NormalizeTransaction(d TransactionDraft) (BankTransaction, error) {
	if d.Date == nil {
		return BankTransaction{}, fmt.Errorf("NormalizeTransaction: missing required field %q", "date")
	}
	if d.Description == nil {
		return BankTransaction{}, fmt.Errorf("NormalizeTransaction: missing required field %q", "description")
	}
	if d.Amount == nil {
		return BankTransaction{}, fmt.Errorf("NormalizeTransaction: missing required field %q", "amount")
	}
	return BankTransaction{
		Date:        *d.Date,
		Description: *d.Description,
		Amount:      *d.Amount,
		Category:    ParseTransactionCategory(stringOr(d.Category, "")),
		Currency:    stringOr(d.Currency, DefaultTransactionCurrency),
	}, nil
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
