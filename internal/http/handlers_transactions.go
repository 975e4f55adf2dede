package http

import (
	"errors"
	"log/slog"
	"net/http"

	"netkas/internal/core"
	"netkas/internal/store"
)

// transactionRequest is the write DTO. Amount arrives as a decimal
// string ("150000" or "150000,50") and is converted to cents.
type transactionRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Category      string `json:"category,omitempty"`
	Date          string `json:"date"`
	PaymentMethod string `json:"paymentMethod"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Description:   req.Description,
		Amount:        core.Money{Cents: cents},
		Type:          core.TransactionType(req.Type),
		Category:      core.ExpenseCategory(req.Category),
		Date:          date,
		PaymentMethod: core.PaymentMethod(req.PaymentMethod),
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, session core.Session) {
	txs, err := s.ledger.ListTransactions(r.Context(), session.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, "", txs)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request, session core.Session) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.ledger.AddTransaction(r.Context(), session.Username, tx)
	if err != nil {
		s.respondTransactionError(w, r, err)
		return
	}
	s.invalidateReports(session.Username)
	respondJSON(w, http.StatusCreated, "transaksi berhasil ditambahkan", created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, session core.Session) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	tx.ID = r.PathValue("id")

	if err := s.ledger.UpdateTransaction(r.Context(), session.Username, tx); err != nil {
		s.respondTransactionError(w, r, err)
		return
	}
	s.invalidateReports(session.Username)
	respondJSON(w, http.StatusOK, "transaksi berhasil diperbarui", tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, session core.Session) {
	// Deleting an unknown ID is a successful no-op.
	if err := s.ledger.DeleteTransaction(r.Context(), session.Username, r.PathValue("id")); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	s.invalidateReports(session.Username)
	respondJSON(w, http.StatusOK, "transaksi berhasil dihapus", nil)
}

func (s *Server) respondTransactionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaksi tidak ditemukan")
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Transaction operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
	}
}

func isValidationError(err error) bool {
	for _, known := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyDescription,
		core.ErrDescriptionTooLong,
		core.ErrInvalidDate,
		core.ErrInvalidType,
		core.ErrInvalidPayment,
		core.ErrInvalidCategory,
		core.ErrCategoryOnIncome,
		core.ErrCategoryMissing,
		core.ErrEmptyName,
		core.ErrInvalidSubscription,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
