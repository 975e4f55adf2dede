package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"netkas/internal/core"
	"netkas/internal/pdf"
	"netkas/internal/view"
)

type dashboardPayload struct {
	TotalIncome  core.Money        `json:"totalIncome"`
	TotalExpense core.Money        `json:"totalExpense"`
	Balance      core.Money        `json:"balance"`
	ByCategory   []categoryPayload `json:"expenseByCategory"`
}

type categoryPayload struct {
	Category core.ExpenseCategory `json:"category"`
	Amount   core.Money           `json:"amount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, session core.Session) {
	txs, err := s.ledger.ListTransactions(r.Context(), session.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for dashboard", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}

	totals := core.ComputeTotals(txs)
	byCategory := make([]categoryPayload, 0)
	for _, ca := range core.ExpenseByCategory(txs) {
		byCategory = append(byCategory, categoryPayload{Category: ca.Category, Amount: ca.Amount})
	}

	respondJSON(w, http.StatusOK, "", dashboardPayload{
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Balance:      totals.Balance,
		ByCategory:   byCategory,
	})
}

// reportPeriod reads year/month query parameters, defaulting to the
// current UTC month.
func reportPeriod(r *http.Request) (int, int, bool) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, false
		}
		month = n
	}
	return year, month, true
}

func (s *Server) monthlyReport(r *http.Request, session core.Session, year, month int) (core.MonthlyReport, error) {
	key := s.reportCacheKey(session.Username, year, month)
	if report, ok := s.reportCache.Get(key); ok {
		return report, nil
	}

	txs, err := s.ledger.ListTransactions(r.Context(), session.Username)
	if err != nil {
		return core.MonthlyReport{}, err
	}
	report := core.ComputeMonthlyReport(txs, year, month, s.report.Partners)
	s.reportCache.Set(key, report)
	return report, nil
}

type reportPayload struct {
	Year          int                `json:"year"`
	Month         int                `json:"month"`
	MonthName     string             `json:"monthName"`
	Transactions  []core.Transaction `json:"transactions"`
	TotalIncome   core.Money         `json:"totalIncome"`
	TotalExpense  core.Money         `json:"totalExpense"`
	Balance       core.Money         `json:"balance"`
	TotalTransfer core.Money         `json:"totalTransfer"`
	TotalCash     core.Money         `json:"totalCash"`
	Shares        []sharePayload     `json:"shares"`
}

type sharePayload struct {
	Name  string     `json:"name"`
	Share core.Money `json:"share"`
}

func toReportPayload(report core.MonthlyReport) reportPayload {
	p := reportPayload{
		Year:          report.Year,
		Month:         report.Month,
		MonthName:     report.MonthName,
		Transactions:  report.Transactions,
		TotalIncome:   report.TotalIncome,
		TotalExpense:  report.TotalExpense,
		Balance:       report.Balance,
		TotalTransfer: report.TotalTransfer,
		TotalCash:     report.TotalCash,
		Shares:        make([]sharePayload, 0, len(report.Shares)),
	}
	if p.Transactions == nil {
		p.Transactions = []core.Transaction{}
	}
	for _, sh := range report.Shares {
		p.Shares = append(p.Shares, sharePayload{Name: sh.Name, Share: sh.Share})
	}
	return p
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request, session core.Session) {
	year, month, ok := reportPeriod(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "periode laporan tidak valid")
		return
	}

	report, err := s.monthlyReport(r, session, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build monthly report", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	respondJSON(w, http.StatusOK, "", toReportPayload(report))
}

func (s *Server) handleMonthlyReportPDF(w http.ResponseWriter, r *http.Request, session core.Session) {
	year, month, ok := reportPeriod(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "periode laporan tidak valid")
		return
	}

	report, err := s.monthlyReport(r, session, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build monthly report", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}

	filename := "Laporan-Keuangan-" + strconv.Itoa(year) + "-" + strconv.Itoa(month) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := pdf.Render(w, s.report.Letterhead, report, time.Now()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render report PDF", "error", err)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, session core.Session) {
	txs, err := s.ledger.ListTransactions(r.Context(), session.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for summary", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}

	summary := s.summarizer.Summarize(r.Context(), txs)
	respondJSON(w, http.StatusOK, "", map[string]string{"summary": summary})
}

func (s *Server) handleListViews(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, "", view.All())
}

func (s *Server) handleResolveView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, "", view.Resolve(r.PathValue("id")))
}
