package http

import (
	"encoding/json"
	"net/http"

	"budget/internal/core"
)

type summaryResponse struct {
	TotalIncome   json.Number   `json:"total_income"`
	TotalExpenses json.Number   `json:"total_expenses"`
	Balance       json.Number   `json:"balance"`
	Income        []core.Record `json:"income"`
	Expenses      []core.Record `json:"expenses"`
}

type transactionResponse struct {
	Kind string `json:"kind"`
	core.Record
}

func newTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{Kind: t.Kind.String(), Record: t.Record()}
}

type categoryAmount struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

type categoriesResponse struct {
	Income             []string         `json:"income"`
	Expense            []string         `json:"expense"`
	ExpensesByCategory []categoryAmount `json:"expenses_by_category"`
}

type monthlyResponse struct {
	Month    string      `json:"month"`
	Income   json.Number `json:"income"`
	Expenses json.Number `json:"expenses"`
	Balance  json.Number `json:"balance"`
}

// handleSummary serves totals and both record lists in insertion order.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.ledger.Summary()
	writeJSON(w, r, http.StatusOK, summaryResponse{
		TotalIncome:   jsonNumber(sum.TotalIncome),
		TotalExpenses: jsonNumber(sum.TotalExpenses),
		Balance:       jsonNumber(sum.Balance),
		Income:        core.Records(sum.Income),
		Expenses:      core.Records(sum.Expenses),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	breakdown := s.ledger.ExpenseBreakdown()
	byCategory := make([]categoryAmount, 0, len(breakdown))
	for _, c := range breakdown {
		byCategory = append(byCategory, categoryAmount{Name: c.Name, Amount: jsonNumber(c.Amount)})
	}
	writeJSON(w, r, http.StatusOK, categoriesResponse{
		Income:             s.ledger.IncomeCategories(),
		Expense:            s.ledger.ExpenseCategories(),
		ExpensesByCategory: byCategory,
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	m := s.ledger.MonthlySummary()
	writeJSON(w, r, http.StatusOK, monthlyResponse{
		Month:    m.Month,
		Income:   jsonNumber(m.Income),
		Expenses: jsonNumber(m.Expenses),
		Balance:  jsonNumber(m.Balance),
	})
}
