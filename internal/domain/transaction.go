package domain

import "time"

// BankTransaction is one transaction extracted from a bank statement.
// Sign convention: positive amount = debit/spend, negative = credit/refund.
type BankTransaction struct {
	Date        string              `json:"date"` // ISO YYYY-MM-DD
	Description string              `json:"description"`
	Amount      float64             `json:"amount"`
	Category    TransactionCategory `json:"category"`
	Currency    string              `json:"currency"`
}

// StoredTransaction is a BankTransaction that has been persisted.
type StoredTransaction struct {
	BankTransaction
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	StatementID string    `json:"statementId,omitempty"`
}
