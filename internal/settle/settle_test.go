package settle

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

func entry(userID int64, lent, owed string) models.LedgerEntry {
	return models.LedgerEntry{
		UserID:     userID,
		AmountLent: decimal.RequireFromString(lent),
		AmountOwed: decimal.RequireFromString(owed),
	}
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name          string
		entries       []models.LedgerEntry
		mode          Mode
		wantErr       bool
		wantTransfers []models.Transfer
	}{
		{
			name: "two users one transfer",
			entries: []models.LedgerEntry{
				entry(1, "300", "0"),
				entry(2, "0", "300"),
			},
			mode: PerTransaction,
			wantTransfers: []models.Transfer{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("300")},
			},
		},
		{
			name:    "empty input yields empty output",
			entries: nil,
			mode:    PerTransaction,
		},
		{
			name: "single user has nothing to settle",
			entries: []models.LedgerEntry{
				entry(1, "100", "0"),
			},
			mode: PerTransaction,
		},
		{
			name: "zero net balances are dropped",
			entries: []models.LedgerEntry{
				entry(1, "100", "100"),
				entry(2, "50", "50"),
			},
			mode: PerTransaction,
		},
		{
			name: "three users settle in two transfers",
			entries: []models.LedgerEntry{
				entry(1, "100", "0"),
				entry(2, "0", "60"),
				entry(3, "0", "40"),
			},
			mode: PerTransaction,
			wantTransfers: []models.Transfer{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("60")},
				{FromUserID: 3, ToUserID: 1, Amount: decimal.RequireFromString("40")},
			},
		},
		{
			name: "entries for the same user accumulate",
			entries: []models.LedgerEntry{
				entry(1, "100", "0"),
				entry(1, "50", "0"),
				entry(2, "0", "150"),
			},
			mode: PerTransaction,
			wantTransfers: []models.Transfer{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("150")},
			},
		},
		{
			name: "aggregate mode rounds emitted amount half up",
			entries: []models.LedgerEntry{
				entry(1, "10.125", "0"),
				entry(2, "0", "10.125"),
			},
			mode: Aggregate,
			wantTransfers: []models.Transfer{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("10.13")},
			},
		},
		{
			name: "per-transaction mode does not round",
			entries: []models.LedgerEntry{
				entry(1, "10.125", "0"),
				entry(2, "0", "10.125"),
			},
			mode: PerTransaction,
			wantTransfers: []models.Transfer{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("10.125")},
			},
		},
		{
			name: "negative lent amount is rejected",
			entries: []models.LedgerEntry{
				entry(1, "-5", "0"),
			},
			mode:    PerTransaction,
			wantErr: true,
		},
		{
			name: "negative owed amount is rejected",
			entries: []models.LedgerEntry{
				entry(1, "0", "-5"),
			},
			mode:    PerTransaction,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settle(tt.entries, tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Settle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("error = %v, want ErrValidation", err)
				}
				return
			}
			if len(got) != len(tt.wantTransfers) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.wantTransfers), got)
			}
			for i, want := range tt.wantTransfers {
				if got[i].FromUserID != want.FromUserID || got[i].ToUserID != want.ToUserID {
					t.Errorf("transfer[%d] = %d->%d, want %d->%d",
						i, got[i].FromUserID, got[i].ToUserID, want.FromUserID, want.ToUserID)
				}
				if !got[i].Amount.Equal(want.Amount) {
					t.Errorf("transfer[%d] amount = %s, want %s", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

// TestSettleMinimality checks the n-1 transfer bound for n non-zero balances.
func TestSettleMinimality(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, "90", "0"),
		entry(2, "35", "0"),
		entry(3, "0", "20"),
		entry(4, "0", "45"),
		entry(5, "0", "60"),
	}
	transfers, err := Settle(entries, PerTransaction)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if len(transfers) > 4 {
		t.Errorf("got %d transfers for 5 non-zero balances, want at most 4", len(transfers))
	}
}

// TestSettleZeroSum applies the returned transfers back to the initial net
// balances and checks that every balance lands on exactly zero.
func TestSettleZeroSum(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, "120.50", "10"),
		entry(2, "0", "55.25"),
		entry(3, "10", "40.25"),
		entry(4, "0", "25"),
	}

	transfers, err := Settle(entries, PerTransaction)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}

	balances := make(map[int64]decimal.Decimal)
	for _, e := range entries {
		balances[e.UserID] = balances[e.UserID].Add(e.AmountLent).Sub(e.AmountOwed)
	}
	for _, tr := range transfers {
		balances[tr.FromUserID] = balances[tr.FromUserID].Add(tr.Amount)
		balances[tr.ToUserID] = balances[tr.ToUserID].Sub(tr.Amount)
	}
	for id, bal := range balances {
		if !bal.IsZero() {
			t.Errorf("user %d balance after applying transfers = %s, want 0", id, bal)
		}
	}
}
