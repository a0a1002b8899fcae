package service

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDriveImageBytes caps how much of a Drive file is read into memory
const maxDriveImageBytes = 20 << 20

// DriveService downloads product images from Google Drive
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a DriveService from a Service Account.
// credentialsJSON takes precedence over credentialsPath when both are set.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string) (*DriveService, error) {
	var opt option.ClientOption
	switch {
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	default:
		return nil, fmt.Errorf("no Google Drive credentials configured")
	}

	driveService, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{client: driveService}, nil
}

// DownloadImage returns the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	if len(data) > maxDriveImageBytes {
		return nil, fmt.Errorf("drive file %s is larger than %d bytes", fileID, maxDriveImageBytes)
	}
	return data, nil
}
