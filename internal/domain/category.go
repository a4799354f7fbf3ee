package domain

// ItemCategory classifies a single receipt line item.
type ItemCategory string

const (
	ItemGroceries      ItemCategory = "groceries"
	ItemDining         ItemCategory = "dining"
	ItemTransportation ItemCategory = "transportation"
	ItemEntertainment  ItemCategory = "entertainment"
	ItemUtilities      ItemCategory = "utilities"
	ItemHealthcare     ItemCategory = "healthcare"
	ItemShopping       ItemCategory = "shopping"
	ItemOther          ItemCategory = "other"
)

var itemCategories = map[ItemCategory]bool{
	ItemGroceries:      true,
	ItemDining:         true,
	ItemTransportation: true,
	ItemEntertainment:  true,
	ItemUtilities:      true,
	ItemHealthcare:     true,
	ItemShopping:       true,
	ItemOther:          true,
}

// ParseItemCategory maps a raw category string onto the known set.
// Unknown or empty values fall back to ItemOther so that schema drift in
// persisted data never breaks a read.
func ParseItemCategory(raw string) ItemCategory {
	c := ItemCategory(raw)
	if itemCategories[c] {
		return c
	}
	return ItemOther
}

// TransactionCategory classifies a bank transaction. It is a superset of the
// receipt item categories with statement-specific flows added.
type TransactionCategory string

const (
	TxnGroceries      TransactionCategory = "groceries"
	TxnDining         TransactionCategory = "dining"
	TxnTransportation TransactionCategory = "transportation"
	TxnEntertainment  TransactionCategory = "entertainment"
	TxnUtilities      TransactionCategory = "utilities"
	TxnHealthcare     TransactionCategory = "healthcare"
	TxnShopping       TransactionCategory = "shopping"
	TxnTravel         TransactionCategory = "travel"
	TxnBills          TransactionCategory = "bills"
	TxnTransfer       TransactionCategory = "transfer"
	TxnIncome         TransactionCategory = "income"
	TxnOther          TransactionCategory = "other"
)

var transactionCategories = map[TransactionCategory]bool{
	TxnGroceries:      true,
	TxnDining:         true,
	TxnTransportation: true,
	TxnEntertainment:  true,
	TxnUtilities:      true,
	TxnHealthcare:     true,
	TxnShopping:       true,
	TxnTravel:         true,
	TxnBills:          true,
	TxnTransfer:       true,
	TxnIncome:         true,
	TxnOther:          true,
}

// ParseTransactionCategory maps a raw category string onto the known set,
// falling back to TxnOther for unknown or empty values.
func ParseTransactionCategory(raw string) TransactionCategory {
	c := TransactionCategory(raw)
	if transactionCategories[c] {
		return c
	}
	return TxnOther
}

// PaymentMethod is how a receipt was paid.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCredit PaymentMethod = "credit"
	PayDebit  PaymentMethod = "debit"
	PayMobile PaymentMethod = "mobile"
	PayOther  PaymentMethod = "other"
)

var paymentMethods = map[PaymentMethod]bool{
	PayCash:   true,
	PayCredit: true,
	PayDebit:  true,
	PayMobile: true,
	PayOther:  true,
}

// ParsePaymentMethod maps a raw payment method string onto the known set,
// falling back to PayOther.
func ParsePaymentMethod(raw string) PaymentMethod {
	m := PaymentMethod(raw)
	if paymentMethods[m] {
		return m
	}
	return PayOther
}
