package http

import (
	"errors"
	"log/slog"
	"net/http"

	"netkas/internal/core"
	"netkas/internal/store"
)

type customerRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	SubscriptionCategory string `json:"subscriptionCategory"`
	Amount               string `json:"amount"`
}

func (req customerRequest) toCustomer() (core.Customer, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Customer{}, err
	}
	return core.Customer{
		Name:                 req.Name,
		Phone:                req.Phone,
		Address:              req.Address,
		SubscriptionCategory: core.SubscriptionCategory(req.SubscriptionCategory),
		Amount:               core.Money{Cents: cents},
	}, nil
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request, session core.Session) {
	customers, err := s.ledger.ListCustomers(r.Context(), session.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list customers", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	if customers == nil {
		customers = []core.Customer{}
	}
	respondJSON(w, http.StatusOK, "", customers)
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request, session core.Session) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}
	c, err := req.toCustomer()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.ledger.AddCustomer(r.Context(), session.Username, c)
	if err != nil {
		s.respondCustomerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, "pelanggan berhasil ditambahkan", created)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request, session core.Session) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}
	c, err := req.toCustomer()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c.ID = r.PathValue("id")

	if err := s.ledger.UpdateCustomer(r.Context(), session.Username, c); err != nil {
		s.respondCustomerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, "pelanggan berhasil diperbarui", c)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request, session core.Session) {
	if err := s.ledger.DeleteCustomer(r.Context(), session.Username, r.PathValue("id")); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete customer", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	respondJSON(w, http.StatusOK, "pelanggan berhasil dihapus", nil)
}

func (s *Server) respondCustomerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "pelanggan tidak ditemukan")
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Customer operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
	}
}
