package service

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService stores order attachments in a Google Drive folder using a
// Service Account.
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService.
// credentialsPath is the Service Account JSON file; folderID is the Drive
// folder all attachments are uploaded into.
func NewDriveService(credentialsPath, folderID string) (*DriveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements StorageInterface
var _ StorageInterface = (*DriveService)(nil)

// Upload stores a file and returns its Drive file ID.
func (ds *DriveService) Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: mimeType,
	}
	if ds.folderID != "" {
		meta.Parents = []string{ds.folderID}
	}

	file, err := ds.client.Files.Create(meta).
		Context(ctx).
		Media(content).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %q: %w", name, err)
	}

	return file.Id, nil
}

// Download fetches the raw bytes of a stored file.
func (ds *DriveService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	return data, nil
}
