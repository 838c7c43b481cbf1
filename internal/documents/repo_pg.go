package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legalens-backend/internal/analysis"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, file_name, original_name, extracted_text, size_bytes, document_type, risk_level, has_deadlines, tags, analysis, uploaded_at, last_accessed`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (` + documentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	analysisJSON, err := json.Marshal(doc.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.OriginalName,
		doc.ExtractedText,
		doc.SizeBytes,
		doc.DocumentType,
		string(doc.RiskLevel),
		doc.HasDeadlines,
		tagsJSON,
		analysisJSON,
		doc.UploadedAt,
		doc.LastAccessed,
	)
	return err
}

// GetByID fetches a document owned by the given user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, userID, documentID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// TouchLastAccessed updates the read timestamp for an owned document.
func (r *PGRepo) TouchLastAccessed(ctx context.Context, userID, documentID string, ts time.Time) error {
	const query = `
UPDATE documents
SET last_accessed = $1
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, ts, userID, documentID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY uploaded_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes an owned document.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `DELETE FROM documents WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes the owned subset of the given ids and reports how many
// went away. Ids owned by other users are silently skipped.
func (r *PGRepo) DeleteMany(ctx context.Context, userID string, documentIDs []string) (int, error) {
	if len(documentIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(documentIDs))
	args := make([]any, 0, len(documentIDs)+1)
	args = append(args, userID)
	for i, id := range documentIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}

	query := `DELETE FROM documents WHERE user_id = $1 AND id IN (` + strings.Join(placeholders, ", ") + `)`
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var riskLevel string
	var tagsJSON, analysisJSON []byte
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.OriginalName,
		&doc.ExtractedText,
		&doc.SizeBytes,
		&doc.DocumentType,
		&riskLevel,
		&doc.HasDeadlines,
		&tagsJSON,
		&analysisJSON,
		&doc.UploadedAt,
		&doc.LastAccessed,
	); err != nil {
		return Document{}, err
	}
	doc.RiskLevel = analysis.NormalizeRiskLevel(riskLevel)
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &doc.Tags); err != nil {
			return Document{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if len(analysisJSON) > 0 {
		if err := json.Unmarshal(analysisJSON, &doc.Analysis); err != nil {
			return Document{}, fmt.Errorf("unmarshal analysis: %w", err)
		}
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
