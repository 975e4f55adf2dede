package http

import (
	"errors"
	"log/slog"
	"net/http"

	"netkas/internal/auth"
	"netkas/internal/core"
)

type addUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ core.Session) {
	users, err := s.accounts.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list accounts", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	if users == nil {
		users = []core.Session{}
	}
	respondJSON(w, http.StatusOK, "", users)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request, _ core.Session) {
	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}
	role := core.Role(req.Role)
	if role == "" {
		role = core.RoleUser
	}

	created, err := s.accounts.AddAccount(r.Context(), req.Username, req.Password, role)
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, "pengguna berhasil ditambahkan", created)
	case errors.Is(err, auth.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "Username sudah digunakan!")
	case errors.Is(err, auth.ErrEmptyCredentials):
		respondError(w, http.StatusUnprocessableEntity, "username dan password wajib diisi")
	default:
		slog.ErrorContext(r.Context(), "Failed to add account", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
	}
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, session core.Session) {
	err := s.accounts.DeleteAccount(r.Context(), session.ID, r.PathValue("id"))
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, "pengguna berhasil dihapus", nil)
	case errors.Is(err, auth.ErrSelfDelete):
		respondError(w, http.StatusUnprocessableEntity, "Anda tidak dapat menghapus akun sendiri")
	case errors.Is(err, auth.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "akun tidak ditemukan")
	default:
		slog.ErrorContext(r.Context(), "Failed to delete account", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
	}
}
