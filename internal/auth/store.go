// Package auth owns the account list, credential verification and the
// persisted session projection.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"netkas/internal/core"
	"netkas/internal/storage"
)

const (
	accountsKey = "users"
	sessionKey  = "sessionUser"

	// Seed credentials for the very first launch. The password is stored
	// bcrypt-hashed and the account is forced to change it on first login.
	seedUsername = "amin"
	seedPassword = "password"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown usernames
	// and wrong passwords to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrSelfDelete         = errors.New("an account may not delete itself")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmptyCredentials   = errors.New("username and password are required")
)

// Store reads and writes the global account list and the active session
// through the persistence adapter.
type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Bootstrap seeds the administrator account when the account list is
// empty. Safe to call on every startup.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	if len(accounts) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	admin := core.Account{
		ID:                 uuid.NewString(),
		Username:           seedUsername,
		PasswordHash:       string(hash),
		Role:               core.RoleAdmin,
		MustChangePassword: true,
	}
	if err := s.save(ctx, []core.Account{admin}); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	slog.InfoContext(ctx, "Seeded administrator account", "username", seedUsername)
	return nil
}

// Login verifies the credentials and persists the session projection.
// Failures are indistinguishable by cause.
func (s *Store) Login(ctx context.Context, username, password string) (core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return core.Session{}, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			return core.Session{}, ErrInvalidCredentials
		}
		session := a.Session()
		raw, err := json.Marshal(session)
		if err != nil {
			return core.Session{}, err
		}
		if err := s.kv.Set(ctx, sessionKey, string(raw)); err != nil {
			return core.Session{}, fmt.Errorf("persist session: %w", err)
		}
		return session, nil
	}
	return core.Session{}, ErrInvalidCredentials
}

// Logout clears the persisted session projection.
func (s *Store) Logout(ctx context.Context) error {
	return s.kv.Delete(ctx, sessionKey)
}

// CurrentSession restores the persisted session, if any. A corrupt
// projection is treated as logged out.
func (s *Store) CurrentSession(ctx context.Context) (core.Session, bool, error) {
	raw, ok, err := s.kv.Get(ctx, sessionKey)
	if err != nil || !ok {
		return core.Session{}, false, err
	}
	var session core.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		slog.WarnContext(ctx, "Stored session is corrupt, treating as logged out", "error", err)
		return core.Session{}, false, nil
	}
	return session, true, nil
}

// List returns all accounts as non-secret projections.
func (s *Store) List(ctx context.Context) ([]core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	out := make([]core.Session, len(accounts))
	for i, a := range accounts {
		out[i] = a.Session()
	}
	return out, nil
}

// AddAccount rejects empty fields and duplicate usernames
// (case-sensitive exact match), then appends the new account.
func (s *Store) AddAccount(ctx context.Context, username, password string, role core.Role) (core.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return core.Session{}, ErrEmptyCredentials
	}
	if role != core.RoleAdmin && role != core.RoleUser {
		return core.Session{}, fmt.Errorf("invalid role: %s", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return core.Session{}, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Username == username {
			return core.Session{}, ErrUsernameTaken
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.Session{}, fmt.Errorf("hash password: %w", err)
	}
	account := core.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	accounts = append(accounts, account)
	if err := s.save(ctx, accounts); err != nil {
		return core.Session{}, fmt.Errorf("save accounts: %w", err)
	}
	return account.Session(), nil
}

// DeleteAccount removes the account with the given ID. The acting
// account may not delete itself; that guard lives here, not in the UI.
func (s *Store) DeleteAccount(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	kept := accounts[:0]
	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrAccountNotFound
	}
	if err := s.save(ctx, kept); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password, stores the new hash and
// clears the forced-change flag.
func (s *Store) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrEmptyCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(accounts[i].PasswordHash), []byte(oldPassword)) != nil {
			return ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		accounts[i].PasswordHash = string(hash)
		accounts[i].MustChangePassword = false
		if err := s.save(ctx, accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}
		return nil
	}
	return ErrAccountNotFound
}

// MustChangePassword reports whether the account still carries the
// forced first-login flag.
func (s *Store) MustChangePassword(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.ID == id {
			return a.MustChangePassword, nil
		}
	}
	return false, ErrAccountNotFound
}

// load decodes the account list; a corrupt list recovers to empty with
// a logged warning so the next bootstrap can reseed.
func (s *Store) load(ctx context.Context) ([]core.Account, error) {
	raw, ok, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var accounts []core.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		slog.WarnContext(ctx, "Stored account list is corrupt, starting empty", "error", err)
		return nil, nil
	}
	return accounts, nil
}

func (s *Store) save(ctx context.Context, accounts []core.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, accountsKey, string(raw))
}
