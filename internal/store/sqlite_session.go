package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveSession replaces whatever session was stored before.
func (s *Store) SaveSession(session Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, token, email, created_at, expires_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			email = excluded.email,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, session.Token, session.Email, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) GetSession() (*Session, error) {
	session := &Session{}
	err := s.db.QueryRow(`
		SELECT token, email, created_at, expires_at
		FROM sessions
		WHERE id = 1
	`).Scan(&session.Token, &session.Email, &session.CreatedAt, &session.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return session, nil
}

// ClearSession is a no-op when nothing is stored.
func (s *Store) ClearSession() error {
	if _, err := s.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
