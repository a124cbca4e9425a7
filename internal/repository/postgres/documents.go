package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"eventradar/internal/domain"
)

// document is one row of the documents table. Data is nil when the document exists without data.
type document struct {
	ID        string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument reads one document row. A JSON null value is treated like SQL NULL.
func scanDocument(row rowScanner) (*document, error) {
	d := &document{}
	if err := row.Scan(&d.ID, &d.Data, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(d.Data), []byte("null")) {
		d.Data = nil
	}
	return d, nil
}

// documentStore holds the queries shared by the path-addressed repositories.
type documentStore struct {
	DB *sql.DB
}

func (s documentStore) get(ctx context.Context, path string) (*document, error) {
	query := `
		SELECT doc_id, data, created_at, updated_at
		FROM documents
		WHERE path = $1
	`
	d, err := scanDocument(s.DB.QueryRowContext(ctx, query, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s documentStore) list(ctx context.Context, parentPath, collection string) ([]*document, error) {
	query := `
		SELECT doc_id, data, created_at, updated_at
		FROM documents
		WHERE parent_path = $1 AND collection = $2
		ORDER BY doc_id
	`
	rows, err := s.DB.QueryContext(ctx, query, parentPath, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := make([]*document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s documentStore) listIDs(ctx context.Context, parentPath, collection string) ([]string, error) {
	query := `
		SELECT doc_id
		FROM documents
		WHERE parent_path = $1 AND collection = $2
		ORDER BY doc_id
	`
	rows, err := s.DB.QueryContext(ctx, query, parentPath, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// delete removes a single document. A missing document is not an error.
func (s documentStore) delete(ctx context.Context, path string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM documents WHERE path = $1`, path)
	return err
}

// deleteTree removes the document at path and every document beneath it in one transaction.
func (s documentStore) deleteTree(ctx context.Context, path string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	query := `DELETE FROM documents WHERE path = $1 OR path LIKE $2`
	if _, err := tx.ExecContext(ctx, query, path, escapeLike(path)+"/%"); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so IDs containing % or _ match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
