package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

var ErrDriveDisabled = errors.New("google drive image source is not configured")

const (
	defaultMaxDimension = 1200
	defaultQuality      = 85
)

// ImageDownloader fetches raw image bytes by file id
type ImageDownloader interface {
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}

// PreparedImage is an uploaded product image ready to submit
type PreparedImage struct {
	Data    []byte // JPEG
	DataURL string // preview for the browser
	Width   int
	Height  int
}

// ImageService turns uploaded files into submission-ready JPEGs
type ImageService struct {
	maxDimension int
	quality      int
	drive        ImageDownloader
	logger       *zap.Logger
}

// NewImageService creates an ImageService. drive may be nil to disable Drive imports.
func NewImageService(maxDimension, quality int, drive ImageDownloader, logger *zap.Logger) *ImageService {
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &ImageService{
		maxDimension: maxDimension,
		quality:      quality,
		drive:        drive,
		logger:       logger,
	}
}

// Prepare decodes an image, shrinks it to fit maxDimension and re-encodes it as JPEG
func (s *ImageService) Prepare(data []byte) (*PreparedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxDimension || bounds.Dy() > s.maxDimension {
		s.logger.Debug("resizing product image",
			zap.Int("width", bounds.Dx()),
			zap.Int("height", bounds.Dy()),
			zap.Int("max_dimension", s.maxDimension),
		)
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	out := buf.Bytes()
	return &PreparedImage{
		Data:    out,
		DataURL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out),
		Width:   img.Bounds().Dx(),
		Height:  img.Bounds().Dy(),
	}, nil
}

// FromDrive downloads a Drive file and prepares it
func (s *ImageService) FromDrive(ctx context.Context, fileID string) (*PreparedImage, error) {
	if s.drive == nil {
		return nil, ErrDriveDisabled
	}

	data, err := s.drive.DownloadImage(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return s.Prepare(data)
}
