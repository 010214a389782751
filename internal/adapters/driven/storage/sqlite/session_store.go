package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores or replaces a session with its recipients and placeholders.
func (s *sessionStore) Save(ctx context.Context, session *domain.PlacementSession) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	pagesJSON, err := json.Marshal(session.Document.Pages)
	if err != nil {
		return fmt.Errorf("marshalling pages: %w", err)
	}

	createdAt, updatedAt := session.CreatedAt, session.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, document_path, pages, loaded_at, scale, current_page, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_path = excluded.document_path,
			pages = excluded.pages,
			loaded_at = excluded.loaded_at,
			scale = excluded.scale,
			current_page = excluded.current_page,
			updated_at = excluded.updated_at
	`, session.ID, session.Document.Path, string(pagesJSON),
		formatNullableTime(session.Document.LoadedAt), session.Scale, session.CurrentPage,
		formatNullableTime(createdAt), formatNullableTime(updatedAt))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipients WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("clearing recipients: %w", err)
	}
	for i, r := range session.Recipients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipients (session_id, id, position, name, email)
			VALUES (?, ?, ?, ?, ?)
		`, session.ID, r.ID, i, r.Name, r.Email)
		if err != nil {
			return fmt.Errorf("saving recipient %s: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM placeholders WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("clearing placeholders: %w", err)
	}
	for i, p := range session.Placeholders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO placeholders (session_id, id, position, x, y, width, height,
				page_number, recipient_id, recipient_name, sign_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, session.ID, p.ID, i, p.X, p.Y, p.Width, p.Height,
			p.PageNumber, p.RecipientID, p.RecipientName, p.Order)
		if err != nil {
			return fmt.Errorf("saving placeholder %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.PlacementSession, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_path, pages, loaded_at, scale, current_page, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := s.loadChildren(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session. Recipients and placeholders cascade.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// List returns all sessions, most recently updated first.
func (s *sessionStore) List(ctx context.Context) ([]domain.PlacementSession, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_path, pages, loaded_at, scale, current_page, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}

	var sessions []domain.PlacementSession //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	for i := range sessions {
		if err := s.loadChildren(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *sessionStore) loadChildren(ctx context.Context, session *domain.PlacementSession) error {
	recipients, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, email FROM recipients
		WHERE session_id = ? ORDER BY position
	`, session.ID)
	if err != nil {
		return fmt.Errorf("querying recipients: %w", err)
	}
	defer recipients.Close()

	for recipients.Next() {
		var r domain.Recipient
		if err := recipients.Scan(&r.ID, &r.Name, &r.Email); err != nil {
			return fmt.Errorf("scanning recipient: %w", err)
		}
		session.Recipients = append(session.Recipients, r)
	}
	if err := recipients.Err(); err != nil {
		return fmt.Errorf("iterating recipients: %w", err)
	}

	placeholders, err := s.store.db.QueryContext(ctx, `
		SELECT id, x, y, width, height, page_number, recipient_id, recipient_name, sign_order
		FROM placeholders WHERE session_id = ? ORDER BY position
	`, session.ID)
	if err != nil {
		return fmt.Errorf("querying placeholders: %w", err)
	}
	defer placeholders.Close()

	for placeholders.Next() {
		var p domain.SignaturePlaceholder
		if err := placeholders.Scan(&p.ID, &p.X, &p.Y, &p.Width, &p.Height,
			&p.PageNumber, &p.RecipientID, &p.RecipientName, &p.Order); err != nil {
			return fmt.Errorf("scanning placeholder: %w", err)
		}
		session.Placeholders = append(session.Placeholders, p)
	}
	if err := placeholders.Err(); err != nil {
		return fmt.Errorf("iterating placeholders: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.PlacementSession, error) {
	var session domain.PlacementSession
	var pagesJSON string
	var loadedAt, createdAt, updatedAt sql.NullString
	if err := row.Scan(&session.ID, &session.Document.Path, &pagesJSON, &loadedAt,
		&session.Scale, &session.CurrentPage, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if err := json.Unmarshal([]byte(pagesJSON), &session.Document.Pages); err != nil {
		return nil, fmt.Errorf("unmarshaling pages: %w", err)
	}
	session.Document.LoadedAt = parseNullableTime(loadedAt)
	session.CreatedAt = parseNullableTime(createdAt)
	session.UpdatedAt = parseNullableTime(updatedAt)
	return &session, nil
}
