package settle

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

// CounterpartyBalances folds a stream of per-scope settlements into the
// viewer's signed balance toward each counterparty. A transfer the viewer
// pays decreases their balance toward the recipient; a transfer the viewer
// receives increases their balance toward the payer. Counterparties whose
// balance nets to exactly zero are dropped.
//
// Results are sorted by user ID; callers must not rely on any richer
// ordering than that.
func CounterpartyBalances(settlements [][]models.Transfer, viewer int64) []models.CounterpartyBalance {
	totals := make(map[int64]decimal.Decimal)
	for _, transfers := range settlements {
		for _, t := range transfers {
			if t.FromUserID == viewer {
				totals[t.ToUserID] = totals[t.ToUserID].Sub(t.Amount)
			}
			if t.ToUserID == viewer {
				totals[t.FromUserID] = totals[t.FromUserID].Add(t.Amount)
			}
		}
	}

	balances := make([]models.CounterpartyBalance, 0, len(totals))
	for id, amount := range totals {
		if amount.IsZero() {
			continue
		}
		balances = append(balances, models.CounterpartyBalance{UserID: id, Amount: amount.IntPart()})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })
	return balances
}
