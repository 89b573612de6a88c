package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	// PostgreSQL driver registration.
	_ "github.com/lib/pq"

	apperrors "github.com/fastkv/fastkv-go/internal/errors"
	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// PostgresStore implements Store on a PostgreSQL table, for deployments that
// mirror their encrypted entries into a self-hosted database instead of (or
// alongside) the chain-backed indexer. Entries are stored as JSONB keyed by
// the fully qualified key string; a write replaces the prior row wholesale.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore around an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the backing table when it does not exist yet.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS fastkv_entries (
				key TEXT PRIMARY KEY,
				entry JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			  )`

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return apperrors.Wrap(err, "failed to migrate fastkv_entries")
	}
	return nil
}

// Set upserts the entry at key.
func (p *PostgresStore) Set(
	ctx context.Context,
	key string,
	entry storageDomain.EncryptedEntry,
) (*storageDomain.Receipt, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode entry")
	}

	query := `INSERT INTO fastkv_entries (key, entry, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (key) DO UPDATE SET entry = EXCLUDED.entry, updated_at = EXCLUDED.updated_at`

	if _, err := p.db.ExecContext(ctx, query, key, payload, time.Now().UTC()); err != nil {
		return nil, apperrors.Wrap(err, "failed to set entry")
	}
	return nil, nil
}

// Get returns the entry at key, or nil when absent.
func (p *PostgresStore) Get(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	query := `SELECT entry FROM fastkv_entries WHERE key = $1`

	var payload []byte
	err := p.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get entry")
	}

	var entry storageDomain.EncryptedEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, apperrors.Wrap(storageDomain.ErrInvalidEntry, err.Error())
	}
	return &entry, nil
}

// Delete removes the entry at key. Deleting an absent key is not an error.
func (p *PostgresStore) Delete(ctx context.Context, key string) (*storageDomain.Receipt, error) {
	query := `DELETE FROM fastkv_entries WHERE key = $1`

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return nil, apperrors.Wrap(err, "failed to delete entry")
	}
	return nil, nil
}

// List returns keys beginning with prefix, ordered by key.
func (p *PostgresStore) List(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM fastkv_entries WHERE starts_with(key, $1) ORDER BY key`

	rows, err := p.db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list entries")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate keys")
	}
	return keys, nil
}
