package http

import (
	"errors"
	"log/slog"
	"net/http"

	"netkas/internal/auth"
	"netkas/internal/core"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionPayload struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Role               core.Role `json:"role"`
	MustChangePassword bool      `json:"mustChangePassword"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}

	session, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Username atau password salah!")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}

	token, err := s.tokens.Generate(session)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to issue session token", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}

	mustChange, err := s.accounts.MustChangePassword(r.Context(), session.ID)
	if err != nil {
		slog.WarnContext(r.Context(), "Failed to read password-change flag", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, "login berhasil", sessionPayload{
		ID:                 session.ID,
		Username:           session.Username,
		Role:               session.Role,
		MustChangePassword: mustChange,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ core.Session) {
	if err := s.accounts.Logout(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "Failed to clear persisted session", "error", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, "logout berhasil", nil)
}

// handleSession restores the caller's session without requiring a login
// round trip. With no valid token it falls back to the persisted
// projection, mirroring how the app resumes after a restart.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.sessionFrom(r); ok {
		mustChange, _ := s.accounts.MustChangePassword(r.Context(), session.ID)
		respondJSON(w, http.StatusOK, "", sessionPayload{
			ID:                 session.ID,
			Username:           session.Username,
			Role:               session.Role,
			MustChangePassword: mustChange,
		})
		return
	}

	session, ok, err := s.accounts.CurrentSession(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to restore session", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "tidak ada sesi aktif")
		return
	}
	mustChange, _ := s.accounts.MustChangePassword(r.Context(), session.ID)
	respondJSON(w, http.StatusOK, "", sessionPayload{
		ID:                 session.ID,
		Username:           session.Username,
		Role:               session.Role,
		MustChangePassword: mustChange,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request, session core.Session) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "permintaan tidak valid")
		return
	}

	err := s.accounts.ChangePassword(r.Context(), session.ID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, "password berhasil diubah", nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "password lama salah")
	case errors.Is(err, auth.ErrEmptyCredentials):
		respondError(w, http.StatusUnprocessableEntity, "password baru tidak boleh kosong")
	case errors.Is(err, auth.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "akun tidak ditemukan")
	default:
		slog.ErrorContext(r.Context(), "Password change failed", "error", err)
		respondError(w, http.StatusInternalServerError, "terjadi kesalahan internal")
	}
}
