// Package settle computes a minimal set of pairwise transfers that clears
// a group of per-user debts.
package settle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

// ErrValidation reports a caller-contract violation in settlement input.
var ErrValidation = errors.New("invalid settlement input")

// Mode selects how emitted transfer amounts are treated.
type Mode int

const (
	// PerTransaction settles one expense's entries in isolation. Amounts
	// are assumed integral at this granularity and are emitted at full
	// precision, without rounding.
	PerTransaction Mode = iota

	// Aggregate settles the union of entries across a scope. Each emitted
	// amount is rounded to two decimal places, half up. Internal cursor
	// accumulation keeps full precision so rounding error cannot compound
	// across sweep steps.
	Aggregate
)

// netBalance pairs a user with their lent-minus-owed total for the scope.
type netBalance struct {
	userID  int64
	balance decimal.Decimal
}

// Settle computes transfers that drive every user's net balance to zero.
//
// Net balances are summed per user, zero balances are dropped, and the rest
// are sorted ascending (largest debtor first, largest creditor last). A two
// cursor sweep then matches the biggest debtor against the biggest creditor
// until all balances clear, emitting at most n-1 transfers for n users.
//
// Empty input yields an empty result. Negative lent or owed amounts are
// rejected with ErrValidation.
func Settle(entries []models.LedgerEntry, mode Mode) ([]models.Transfer, error) {
	dues, err := netBalances(entries)
	if err != nil {
		return nil, err
	}

	var transfers []models.Transfer
	start, end := 0, len(dues)-1
	for start < end {
		amount := decimal.Min(dues[start].balance.Abs(), dues[end].balance.Abs())
		if !amount.IsZero() {
			emitted := amount
			if mode == Aggregate {
				emitted = amount.Round(2)
			}
			transfers = append(transfers, models.Transfer{
				FromUserID: dues[start].userID,
				ToUserID:   dues[end].userID,
				Amount:     emitted,
			})
		}
		dues[start].balance = dues[start].balance.Add(amount)
		dues[end].balance = dues[end].balance.Sub(amount)
		if dues[start].balance.IsZero() {
			start++
		} else {
			end--
		}
	}
	return transfers, nil
}

// netBalances sums lent-minus-owed per user, preserving first-seen order so
// the ascending sort below stays deterministic for equal balances.
func netBalances(entries []models.LedgerEntry) ([]netBalance, error) {
	totals := make(map[int64]decimal.Decimal, len(entries))
	var order []int64
	for _, e := range entries {
		if e.AmountLent.IsNegative() {
			return nil, fmt.Errorf("%w: user %d has negative amount_lent %s", ErrValidation, e.UserID, e.AmountLent)
		}
		if e.AmountOwed.IsNegative() {
			return nil, fmt.Errorf("%w: user %d has negative amount_owed %s", ErrValidation, e.UserID, e.AmountOwed)
		}
		if _, seen := totals[e.UserID]; !seen {
			order = append(order, e.UserID)
		}
		totals[e.UserID] = totals[e.UserID].Add(e.AmountLent).Sub(e.AmountOwed)
	}

	dues := make([]netBalance, 0, len(order))
	for _, id := range order {
		if totals[id].IsZero() {
			continue
		}
		dues = append(dues, netBalance{userID: id, balance: totals[id]})
	}
	sort.SliceStable(dues, func(i, j int) bool {
		return dues[i].balance.LessThan(dues[j].balance)
	})
	return dues, nil
}
