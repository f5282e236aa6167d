package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// integrationStore implements driven.IntegrationStore.
type integrationStore struct {
	store *Store
}

var _ driven.IntegrationStore = (*integrationStore)(nil)

const integrationColumns = `id, user_id, workspace_id, provider, account_email, access_token,
	refresh_token, expires_at, scopes, is_active, created_at, updated_at`

// Save stores or updates an integration.
func (s *integrationStore) Save(ctx context.Context, in domain.Integration) error {
	if in.ID == "" || in.UserID == "" {
		return domain.ErrInvalidInput
	}

	scopes := in.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	scopesJSON, err := json.Marshal(scopes)
	if err != nil {
		return fmt.Errorf("marshalling scopes: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO integrations (`+integrationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			workspace_id = excluded.workspace_id,
			provider = excluded.provider,
			account_email = excluded.account_email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			scopes = excluded.scopes,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`, in.ID, in.UserID, in.WorkspaceID, in.Provider, in.AccountEmail, in.AccessToken,
		in.RefreshToken, in.ExpiresAt, string(scopesJSON), in.IsActive, in.CreatedAt, in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving integration: %w", err)
	}
	return nil
}

// FindActive returns the active integration for the scope, or nil.
func (s *integrationStore) FindActive(ctx context.Context, scope domain.ScopeKey) (*domain.Integration, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+integrationColumns+`
		FROM integrations
		WHERE user_id = ? AND workspace_id = ? AND is_active = 1
		ORDER BY updated_at DESC
		LIMIT 1
	`, scope.UserID, scope.WorkspaceID)

	in, err := scanIntegration(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // Not connected is not an error
	}
	return in, err
}

// Deactivate marks every integration for the scope inactive.
func (s *integrationStore) Deactivate(ctx context.Context, scope domain.ScopeKey) error {
	_, err := s.store.db.ExecContext(ctx, `
		UPDATE integrations SET is_active = 0
		WHERE user_id = ? AND workspace_id = ? AND is_active = 1
	`, scope.UserID, scope.WorkspaceID)
	if err != nil {
		return fmt.Errorf("deactivating integrations: %w", err)
	}
	return nil
}

// List returns all integrations for a user, newest first.
func (s *integrationStore) List(ctx context.Context, userID string) ([]domain.Integration, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+integrationColumns+`
		FROM integrations WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying integrations: %w", err)
	}
	defer rows.Close()

	integrations := []domain.Integration{}
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		integrations = append(integrations, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating integrations: %w", err)
	}
	return integrations, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIntegration scans a single integration row.
func scanIntegration(row rowScanner) (*domain.Integration, error) {
	var in domain.Integration
	var expiresAt sql.NullTime
	var scopesJSON sql.NullString

	if err := row.Scan(&in.ID, &in.UserID, &in.WorkspaceID, &in.Provider, &in.AccountEmail,
		&in.AccessToken, &in.RefreshToken, &expiresAt, &scopesJSON, &in.IsActive,
		&in.CreatedAt, &in.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning integration: %w", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		in.ExpiresAt = &t
	}
	if scopesJSON.Valid && scopesJSON.String != "" {
		if err := json.Unmarshal([]byte(scopesJSON.String), &in.Scopes); err != nil {
			return nil, fmt.Errorf("unmarshalling scopes: %w", err)
		}
	}

	return &in, nil
}
