package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/settle"
)

// SettlementService answers balance queries for the expense-sharing API.
// The caller supplies already-validated ledger rows; nothing is persisted.
type SettlementService struct{}

// NewSettlementService creates a SettlementService.
func NewSettlementService() *SettlementService {
	return &SettlementService{}
}

// RegisterRoutes attaches the settlement endpoints to the router.
func (s *SettlementService) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/expense/balances", s.handleExpenseBalances).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/group/balances", s.handleGroupBalances).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/balances", s.handleBalances).Methods(http.MethodPost)
}

type entriesRequest struct {
	Entries []models.LedgerEntry `json:"entries"`
}

// intTransfer is the per-transaction response shape: amounts are integral
// at single-expense granularity and emitted as integers.
type intTransfer struct {
	FromUserID int64 `json:"from_user"`
	ToUserID   int64 `json:"to_user"`
	Amount     int64 `json:"amount"`
}

// decimalTransfer is the aggregate response shape: amounts rounded to two
// decimal places and emitted as strings, e.g. "12.50".
type decimalTransfer struct {
	FromUserID int64  `json:"from_user"`
	ToUserID   int64  `json:"to_user"`
	Amount     string `json:"amount"`
}

type balancesRequest struct {
	Viewer   int64                  `json:"viewer"`
	Expenses [][]models.LedgerEntry `json:"expenses"`
}

// handleExpenseBalances settles one expense's entries in isolation.
func (s *SettlementService) handleExpenseBalances(w http.ResponseWriter, r *http.Request) {
	var req entriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	transfers, err := settle.Settle(req.Entries, settle.PerTransaction)
	if err != nil {
		slog.Error("Expense settlement failed", "error", err)
		writeFailure(w, settleStatus(err), err.Error())
		return
	}

	resp := make([]intTransfer, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, intTransfer{
			FromUserID: t.FromUserID,
			ToUserID:   t.ToUserID,
			Amount:     t.Amount.IntPart(),
		})
	}
	slog.Info("Expense settled", "entries", len(req.Entries), "transfers", len(resp))
	writeJSON(w, http.StatusOK, resp)
}

// handleGroupBalances settles the union of a group's entries, rounding
// each emitted amount to two decimal places.
func (s *SettlementService) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	var req entriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	transfers, err := settle.Settle(req.Entries, settle.Aggregate)
	if err != nil {
		slog.Error("Group settlement failed", "error", err)
		writeFailure(w, settleStatus(err), err.Error())
		return
	}

	resp := make([]decimalTransfer, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, decimalTransfer{
			FromUserID: t.FromUserID,
			ToUserID:   t.ToUserID,
			Amount:     t.Amount.StringFixed(2),
		})
	}
	slog.Info("Group settled", "entries", len(req.Entries), "transfers", len(resp))
	writeJSON(w, http.StatusOK, resp)
}

// handleBalances answers "what do I owe each other user": every expense is
// settled in isolation, then the per-expense transfers are folded into the
// viewer's signed balance per counterparty.
func (s *SettlementService) handleBalances(w http.ResponseWriter, r *http.Request) {
	var req balancesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settlements := make([][]models.Transfer, 0, len(req.Expenses))
	for _, entries := range req.Expenses {
		transfers, err := settle.Settle(entries, settle.PerTransaction)
		if err != nil {
			slog.Error("Balance settlement failed", "error", err)
			writeFailure(w, settleStatus(err), err.Error())
			return
		}
		settlements = append(settlements, transfers)
	}

	balances := settle.CounterpartyBalances(settlements, req.Viewer)
	slog.Info("Balances returned", "viewer", req.Viewer, "counterparties", len(balances))
	writeJSON(w, http.StatusOK, balances)
}

func settleStatus(err error) int {
	if errors.Is(err, settle.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
