package models

import "github.com/shopspring/decimal"

// LedgerEntry represents one user's share of a single expense.
// The surrounding service supplies these rows already validated against
// its own storage; the settlement core only checks monetary sanity.
type LedgerEntry struct {
	// UserID identifies the user this entry belongs to.
	UserID int64 `json:"user_id"`

	// AmountLent is what the user put in for the expense. Never negative.
	AmountLent decimal.Decimal `json:"amount_lent"`

	// AmountOwed is the user's share of the expense. Never negative.
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

// Transfer is a directed payment that clears debt between two users.
// Applying every transfer of a settlement drives all net balances to zero.
type Transfer struct {
	// FromUserID is the debtor making the payment.
	FromUserID int64

	// ToUserID is the creditor receiving the payment.
	ToUserID int64

	// Amount is the payment amount, always >= 0. In per-transaction mode
	// it carries full precision; in aggregate mode it is already rounded
	// to two decimal places.
	Amount decimal.Decimal
}

// CounterpartyBalance is the viewer's signed balance toward one other user.
// Positive means the counterparty owes the viewer.
type CounterpartyBalance struct {
	UserID int64 `json:"user"`
	Amount int64 `json:"amount"`
}
