package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academy-backoffice/internal/model"
)

// DocumentRepository stores every resource kind in one JSONB table.
// Unique fields are enforced by partial expression indexes (see migrations).
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Insert stores a new document of the given kind.
func (r *DocumentRepository) Insert(ctx context.Context, kind model.Resource, fields map[string]interface{}) (*model.Document, error) {
	doc := &model.Document{ID: uuid.NewString(), Fields: fields}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO documents (id, kind, data) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		doc.ID, string(kind), fields,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}
	return doc, nil
}

// Find lists documents whose fields textually equal every filter value.
func (r *DocumentRepository) Find(ctx context.Context, kind model.Resource, filter map[string]string) ([]model.Document, error) {
	query := `SELECT id, data, created_at, updated_at FROM documents WHERE kind = $1`
	args := []interface{}{string(kind)}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		query += ` AND data->>($` + strconv.Itoa(len(args)+1) + `::text) = $` + strconv.Itoa(len(args)+2)
		args = append(args, k, filter[k])
	}
	query += ` ORDER BY created_at DESC`

	return r.queryDocs(ctx, query, args...)
}

// FindByID retrieves one document.
func (r *DocumentRepository) FindByID(ctx context.Context, kind model.Resource, id string) (*model.Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	doc := &model.Document{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE kind = $1 AND id = $2`,
		string(kind), id,
	).Scan(&doc.ID, &doc.Fields, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// FindByIDs retrieves the subset of ids that exist. Order is unspecified.
func (r *DocumentRepository) FindByIDs(ctx context.Context, kind model.Resource, ids []string) ([]model.Document, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []model.Document{}, nil
	}
	return r.queryDocs(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE kind = $1 AND id = ANY($2)`,
		string(kind), valid,
	)
}

// Patch merges fields into an existing document (top-level keys replaced).
func (r *DocumentRepository) Patch(ctx context.Context, kind model.Resource, id string, fields map[string]interface{}) (*model.Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	doc := &model.Document{}
	err := r.pool.QueryRow(ctx,
		`UPDATE documents SET data = data || $3, updated_at = CURRENT_TIMESTAMP
		 WHERE kind = $1 AND id = $2
		 RETURNING id, data, created_at, updated_at`,
		string(kind), id, fields,
	).Scan(&doc.ID, &doc.Fields, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("patch %s: %w", kind, err)
	}
	return doc, nil
}

// Delete removes a document.
func (r *DocumentRepository) Delete(ctx context.Context, kind model.Resource, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of documents of a kind.
func (r *DocumentRepository) Count(ctx context.Context, kind model.Resource) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE kind = $1`, string(kind)).Scan(&n)
	return n, err
}

// Ping checks the underlying pool.
func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DocumentRepository) queryDocs(ctx context.Context, query string, args ...interface{}) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Fields, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
