package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/dbx"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

const documentColumns = `d.id, d.kind, d.title, d.date, d.is_published, d.items,
			      d.total_gross, d.total_net, d.total_vat, d.created_at, d.updated_at`

// CreateDocument сохраняет документ и связь с владельцем в одной транзакции.
func (s *Storage) CreateDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	items, err := encodeItems(doc.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created *models.Document
	err = dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO documents AS d (id, kind, title, date, is_published, items,
				      total_gross, total_net, total_vat)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				  RETURNING ` + documentColumns
		row := tx.QueryRowContext(ctx, query,
			doc.ID, string(doc.Kind), doc.Title, doc.Date, doc.IsPublished, string(items),
			doc.Gross, doc.Net, doc.Vat)
		d, err := scanDocument(row)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_documents (document_id, user_uid, kind) VALUES ($1, $2, $3)`,
			d.ID, ownerUID, string(d.Kind)); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// OwnedDocumentIDs возвращает идентификаторы документов вида kind,
// принадлежащих пользователю.
func (s *Storage) OwnedDocumentIDs(ctx context.Context, ownerUID string, kind models.Kind) ([]string, error) {
	const op = "storage.OwnedDocumentIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(ownerUID); err != nil {
		return []string{}, nil
	}

	query := `SELECT ud.document_id
			  FROM user_documents ud
			  JOIN documents d ON d.id = ud.document_id
			  WHERE ud.user_uid = $1 AND ud.kind = $2
			  ORDER BY d.created_at, d.id`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := []string{}
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// GetDocument возвращает документ вида kind по ID без проверки владельца.
// Некорректный ID считается отсутствующим документом.
func (s *Storage) GetDocument(ctx context.Context, kind models.Kind, id string) (*models.Document, error) {
	const op = "storage.GetDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}

	query := `SELECT ` + documentColumns + `
			  FROM documents d
			  WHERE d.id = $1 AND d.kind = $2`
	d, err := scanDocument(s.DB.QueryRowContext(ctx, query, id, string(kind)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// UpdateOwnedDocument обновляет документ, если он принадлежит ownerUID.
// Связь с владельцем блокируется до конца транзакции.
func (s *Storage) UpdateOwnedDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	const op = "storage.UpdateOwnedDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if !validUUIDs(ownerUID, doc.ID) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}
	items, err := encodeItems(doc.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.Document
	err = dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockOwnership(ctx, tx, ownerUID, doc.Kind, doc.ID); err != nil {
			return err
		}

		query := `UPDATE documents AS d
				  SET title = $1, date = $2, is_published = $3, items = $4,
				      total_gross = $5, total_net = $6, total_vat = $7, updated_at = now()
				  WHERE d.id = $8
				  RETURNING ` + documentColumns
		d, err := scanDocument(tx.QueryRowContext(ctx, query,
			doc.Title, doc.Date, doc.IsPublished, string(items),
			doc.Gross, doc.Net, doc.Vat, doc.ID))
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveOwnedDocument удаляет документ и связь с владельцем в одной транзакции
// и возвращает удалённый документ. Если удаление документа не удалось,
// связь остаётся на месте.
func (s *Storage) RemoveOwnedDocument(ctx context.Context, ownerUID string, kind models.Kind, id string) (*models.Document, error) {
	const op = "storage.RemoveOwnedDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if !validUUIDs(ownerUID, id) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}

	var removed *models.Document
	err := dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockOwnership(ctx, tx, ownerUID, kind, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_documents WHERE document_id = $1`, id); err != nil {
			return err
		}

		query := `DELETE FROM documents AS d
				  WHERE d.id = $1
				  RETURNING ` + documentColumns
		d, err := scanDocument(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}
		removed = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return removed, nil
}

// ListDocuments возвращает документы вида kind, принадлежащие пользователю.
func (s *Storage) ListDocuments(ctx context.Context, ownerUID string, kind models.Kind) ([]*models.Document, error) {
	const op = "storage.ListDocuments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(ownerUID); err != nil {
		return []*models.Document{}, nil
	}

	query := `SELECT ` + documentColumns + `
			  FROM documents d
			  JOIN user_documents ud ON ud.document_id = d.id
			  WHERE ud.user_uid = $1 AND d.kind = $2
			  ORDER BY d.created_at, d.id`
	docs, err := s.queryDocuments(ctx, query, ownerUID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

// ListAllDocuments возвращает документы вида kind всех пользователей.
func (s *Storage) ListAllDocuments(ctx context.Context, kind models.Kind) ([]*models.Document, error) {
	const op = "storage.ListAllDocuments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + documentColumns + `
			  FROM documents d
			  WHERE d.kind = $1
			  ORDER BY d.created_at, d.id`
	docs, err := s.queryDocuments(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

func (s *Storage) queryDocuments(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// lockOwnership проверяет владельца и блокирует строку связи.
func lockOwnership(ctx context.Context, tx dbx.DBTX, ownerUID string, kind models.Kind, id string) error {
	var docID string
	err := tx.QueryRowContext(ctx,
		`SELECT document_id FROM user_documents
		 WHERE document_id = $1 AND user_uid = $2 AND kind = $3
		 FOR UPDATE`, id, ownerUID, string(kind)).Scan(&docID)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return err
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		d     models.Document
		kind  string
		items []byte
	)
	if err := row.Scan(&d.ID, &kind, &d.Title, &d.Date, &d.IsPublished, &items,
		&d.Gross, &d.Net, &d.Vat, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	d.Kind = models.Kind(kind)
	d.Items = []models.Item{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	d.Date = d.Date.UTC()
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

func encodeItems(items []models.Item) ([]byte, error) {
	if items == nil {
		items = []models.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return data, nil
}

func validUUIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
