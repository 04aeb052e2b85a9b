package controller

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/repository"
	"printshop-crm/service"
)

// maxUploadBytes caps artwork uploads at 50 MB.
const maxUploadBytes = 50 << 20

// AttachmentController handles artwork uploads and downloads. Bytes live in
// Drive; only metadata is stored locally.
type AttachmentController struct {
	attachments repository.AttachmentRepositoryInterface
	orders      repository.OrderRepositoryInterface
	storage     service.StorageInterface
	logger      *zap.Logger
}

// NewAttachmentController creates a new AttachmentController.
func NewAttachmentController(
	attachments repository.AttachmentRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	storage service.StorageInterface,
	logger *zap.Logger,
) *AttachmentController {
	return &AttachmentController{
		attachments: attachments,
		orders:      orders,
		storage:     storage,
		logger:      logger,
	}
}

// List handles GET /admin/orders/{id}/attachments.
func (c *AttachmentController) List(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	attachments, err := c.attachments.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

// Upload handles POST /admin/orders/{id}/attachments. Expects a multipart
// form with a "file" part.
func (c *AttachmentController) Upload(w http.ResponseWriter, r *http.Request) {
	if c.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage is not configured")
		return
	}

	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if _, err := c.orders.GetOrder(r.Context(), orderID); err != nil {
		writeRepoError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing file part: %v", err))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	driveID, err := c.storage.Upload(r.Context(), header.Filename, mimeType, file)
	if err != nil {
		c.logger.Error("attachment upload failed",
			zap.Int64("orderId", orderID),
			zap.String("fileName", header.Filename),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to store file: %v", err))
		return
	}

	attachment := &models.OrderAttachment{
		OrderID:     orderID,
		FileName:    header.Filename,
		MimeType:    mimeType,
		DriveFileID: driveID,
		SizeBytes:   header.Size,
	}
	if err := c.attachments.Insert(r.Context(), attachment); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attachment)
}

// Download handles GET /admin/attachments/{id}/download.
func (c *AttachmentController) Download(w http.ResponseWriter, r *http.Request) {
	attachment, data, ok := c.fetch(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", attachment.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Thumbnail handles GET /admin/attachments/{id}/thumbnail. Returns a bounded
// JPEG preview, or 415 for attachments that are not decodable images.
func (c *AttachmentController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	_, data, ok := c.fetch(w, r)
	if !ok {
		return
	}

	thumb, err := service.Thumbnail(data)
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, "attachment is not a previewable image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(thumb)
}

func (c *AttachmentController) fetch(w http.ResponseWriter, r *http.Request) (*models.OrderAttachment, []byte, bool) {
	if c.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage is not configured")
		return nil, nil, false
	}

	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid attachment id")
		return nil, nil, false
	}

	attachment, err := c.attachments.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return nil, nil, false
	}

	data, err := c.storage.Download(r.Context(), attachment.DriveFileID)
	if err != nil {
		c.logger.Error("attachment download failed",
			zap.Int64("attachmentId", id),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to fetch file: %v", err))
		return nil, nil, false
	}

	return attachment, data, true
}
