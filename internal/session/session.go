// Package session holds the locally persisted login snapshot: the auth
// token plus the last known user profile. It is populated on successful
// login, invalidated on logout or credential rejection, and read only as
// a fallback when the authoritative profile fetch fails.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/okrtree/internal/domain"
)

// ErrNoSession is returned when no snapshot is stored.
var ErrNoSession = errors.New("no stored session")

// Snapshot is the persisted login state.
type Snapshot struct {
	Token   string
	EmpID   string
	Role    string
	User    domain.User
	SavedAt time.Time
}

// Store persists a single session snapshot in the local database.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored snapshot. EmpID and Role are extracted from the
// token's claims so later reads can check the snapshot still belongs to
// the token holder.
func (s *Store) Save(token string, user domain.User) error {
	empID, role, err := ExtractClaims(token)
	if err != nil {
		return fmt.Errorf("extracting token claims: %w", err)
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO session (id, token, emp_id, role, profile, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			emp_id = excluded.emp_id,
			role = excluded.role,
			profile = excluded.profile,
			saved_at = excluded.saved_at`,
		token, empID, role, string(profile), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or ErrNoSession.
func (s *Store) Load() (*Snapshot, error) {
	var (
		snap    Snapshot
		profile string
		savedAt string
	)
	err := s.db.QueryRow(`SELECT token, emp_id, role, profile, saved_at FROM session WHERE id = 1`).
		Scan(&snap.Token, &snap.EmpID, &snap.Role, &profile, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if err := json.Unmarshal([]byte(profile), &snap.User); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
		snap.SavedAt = t
	}
	return &snap, nil
}

// Clear removes the stored snapshot. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
