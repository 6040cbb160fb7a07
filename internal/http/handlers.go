package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	applog "budget/internal/log"
)

type txRow struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

type categoryRow struct {
	Name   string
	Amount string
	Width  int
}

type indexData struct {
	TotalIncome     string
	TotalExpenses   string
	Balance         string
	BalanceNegative bool

	Month         string
	MonthIncome   string
	MonthExpenses string
	MonthBalance  string

	Categories []categoryRow
	Income     []txRow
	Expenses   []txRow

	IncomeCategories  []string
	ExpenseCategories []string
	MaxDescription    int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sum := s.ledger.Summary()
	month := s.ledger.MonthlySummary()
	data := indexData{
		TotalIncome:       formatMoney(sum.TotalIncome),
		TotalExpenses:     formatMoney(sum.TotalExpenses),
		Balance:           formatMoney(sum.Balance),
		BalanceNegative:   sum.Balance.IsNegative(),
		Month:             month.Month,
		MonthIncome:       formatMoney(month.Income),
		MonthExpenses:     formatMoney(month.Expenses),
		MonthBalance:      formatMoney(month.Balance),
		Categories:        categoryRows(s.ledger.ExpenseBreakdown()),
		Income:            txRows(sum.Income),
		Expenses:          txRows(sum.Expenses),
		IncomeCategories:  s.ledger.IncomeCategories(),
		ExpenseCategories: s.ledger.ExpenseCategories(),
		MaxDescription:    core.MaxDescriptionLength,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpRender)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// categoryRows scales each category to a bar width relative to the largest
// one; non-zero values get at least 2%.
func categoryRows(breakdown []core.CategoryAmount) []categoryRow {
	largest := decimal.Zero
	for _, c := range breakdown {
		if c.Amount.GreaterThan(largest) {
			largest = c.Amount
		}
	}

	rows := make([]categoryRow, 0, len(breakdown))
	hundred := decimal.NewFromInt(100)
	for _, c := range breakdown {
		width := 0
		if largest.IsPositive() && c.Amount.IsPositive() {
			width = int(c.Amount.Mul(hundred).Div(largest).Round(0).IntPart())
			if width < 2 {
				width = 2
			}
		}
		rows = append(rows, categoryRow{Name: c.Name, Amount: formatMoney(c.Amount), Width: width})
	}
	return rows
}

// txRows lists the newest record first.
func txRows(ts []core.Transaction) []txRow {
	rows := make([]txRow, 0, len(ts))
	for i := len(ts) - 1; i >= 0; i-- {
		t := ts[i]
		rows = append(rows, txRow{
			Description: t.Description,
			Amount:      formatMoney(t.Amount),
			Category:    t.Category,
			Date:        t.Date,
		})
	}
	return rows
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	s.handleAdd(w, r, core.KindIncome)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	s.handleAdd(w, r, core.KindExpense)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request, kind core.Kind) {
	ctx := r.Context()
	sl := applog.NewStructuredLogger(applog.FromContext(ctx))

	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		sl.LogValidationFailure(ctx, kind.String(), err)
		BadRequestError(r, "Invalid request format").Write(w)
		return
	}

	form, err := ParseTransactionForm(parser)
	if err != nil {
		sl.LogValidationFailure(ctx, kind.String(), err)
		BadRequestError(r, validationMessage(err)).Write(w)
		return
	}

	t, err := s.add(ctx, kind, form)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, core.ErrInvalidAmount):
		sl.LogValidationFailure(ctx, kind.String(), err)
		BadRequestError(r, validationMessage(err)).Write(w)
		return
	default:
		sl.LogError(ctx, "Failed to record transaction", err, applog.OpCreate,
			applog.NewFields().WithTransaction(kind.String(), form.Description, form.Amount, form.Category, ""))
		InternalServerError(r, "Failed to save transaction").Write(w)
		return
	}

	sl.LogTransactionRecorded(ctx, kind.String(), t.Description, core.FormatAmount(t.Amount), t.Category, t.Date)

	switch {
	case isHTMX(r):
		NewHTMXResponse().
			TriggerTransactionRecorded(t).
			TriggerFormReset().
			TriggerSuccessNotification(successMessage(t)).
			Redirect("/").
			Write(w)
	case parser.IsJSON():
		writeJSON(w, r, http.StatusCreated, newTransactionResponse(t))
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func successMessage(t core.Transaction) string {
	if t.Kind == core.KindIncome {
		return "Income added: " + formatMoney(t.Amount)
	}
	return "Expense added: " + formatMoney(t.Amount)
}

func (s *Server) add(ctx context.Context, kind core.Kind, form TransactionForm) (core.Transaction, error) {
	if kind == core.KindIncome {
		return s.ledger.AddIncome(ctx, form.Description, form.Amount, form.Category)
	}
	return s.ledger.AddExpense(ctx, form.Description, form.Amount, form.Category)
}
