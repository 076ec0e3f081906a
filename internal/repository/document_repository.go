package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// documentRepository stores entities as JSONB documents in a table of
// (id, data, created_at, updated_at). Table names are compile-time constants.
type documentRepository[T any, PT EntityPtr[T]] struct {
	db    *sql.DB
	table string
}

func newDocumentRepository[T any, PT EntityPtr[T]](db *sql.DB, table string) *documentRepository[T, PT] {
	return &documentRepository[T, PT]{db: db, table: table}
}

// NewDocumentRepository creates a postgres-backed Store for one entity type
func NewDocumentRepository[T any, PT EntityPtr[T]](db *sql.DB, table string) Store[T] {
	return newDocumentRepository[T, PT](db, table)
}

// Create inserts a new document, generating an ID when the entity has none
func (r *documentRepository[T, PT]) Create(ctx context.Context, entity *T) error {
	e := PT(entity)
	if e.GetID() == "" {
		e.SetID(uuid.New().String())
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", r.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, r.table)
	if _, err := r.db.ExecContext(ctx, query, e.GetID(), data); err != nil {
		return fmt.Errorf("failed to create %s document: %w", r.table, err)
	}

	return nil
}

// List retrieves all documents in insertion order
func (r *documentRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.queryDocuments(ctx, "")
}

// FindByID retrieves a document by ID
func (r *documentRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, r.table)

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s document by ID: %w", r.table, err)
	}

	entity := new(T)
	if err := json.Unmarshal(raw, entity); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", r.table, err)
	}
	return entity, nil
}

// Update replaces the stored document
func (r *documentRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", r.table, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET data = $2, updated_at = NOW() WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, PT(entity).GetID(), data)
	if err != nil {
		return fmt.Errorf("failed to update %s document: %w", r.table, err)
	}

	return checkAffected(result)
}

// Delete removes a document by ID
func (r *documentRepository[T, PT]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s document: %w", r.table, err)
	}

	return checkAffected(result)
}

func (r *documentRepository[T, PT]) queryDocuments(ctx context.Context, where string, args ...interface{}) ([]T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s %s ORDER BY created_at ASC, id ASC`, r.table, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", r.table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", r.table, err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", r.table, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s documents: %w", r.table, err)
	}

	return items, nil
}

func (r *documentRepository[T, PT]) findOne(ctx context.Context, where string, args ...interface{}) (*T, error) {
	items, err := r.queryDocuments(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
