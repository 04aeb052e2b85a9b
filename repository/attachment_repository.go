package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// AttachmentRepository handles order attachment metadata. File bytes are
// stored in Drive; only the reference lives here.
type AttachmentRepository struct{}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository() *AttachmentRepository {
	return &AttachmentRepository{}
}

// Ensure AttachmentRepository implements AttachmentRepositoryInterface
var _ AttachmentRepositoryInterface = (*AttachmentRepository)(nil)

func (r *AttachmentRepository) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderAttachment, error) {
	query := `
		SELECT id, order_id, file_name, mime_type, drive_file_id, size_bytes, created_at
		FROM order_attachments
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var attachments []models.OrderAttachment
	for rows.Next() {
		var a models.OrderAttachment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.FileName, &a.MimeType, &a.DriveFileID, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

func (r *AttachmentRepository) Get(ctx context.Context, id int64) (*models.OrderAttachment, error) {
	query := `
		SELECT id, order_id, file_name, mime_type, drive_file_id, size_bytes, created_at
		FROM order_attachments
		WHERE id = $1
	`

	var a models.OrderAttachment
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.OrderID, &a.FileName, &a.MimeType, &a.DriveFileID, &a.SizeBytes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("attachment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attachment %d: %w", id, err)
	}

	return &a, nil
}

func (r *AttachmentRepository) Insert(ctx context.Context, attachment *models.OrderAttachment) error {
	if err := touchExists(ctx, "orders", attachment.OrderID); err != nil {
		return err
	}

	query := `
		INSERT INTO order_attachments (order_id, file_name, mime_type, drive_file_id, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := db.DB.QueryRowContext(ctx, query,
		attachment.OrderID, attachment.FileName, attachment.MimeType,
		attachment.DriveFileID, attachment.SizeBytes,
	).Scan(&attachment.ID, &attachment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", err)
	}

	return nil
}
