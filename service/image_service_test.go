package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeDownloader struct {
	data []byte
	err  error
	ids  []string
}

func (f *fakeDownloader) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	f.ids = append(f.ids, fileID)
	return f.data, f.err
}

func TestPrepareResizesLargeImages(t *testing.T) {
	svc := NewImageService(100, 80, nil, zap.NewNop())

	prepared, err := svc.Prepare(pngBytes(t, 400, 200))
	require.NoError(t, err)

	assert.Equal(t, 100, prepared.Width)
	assert.Equal(t, 50, prepared.Height)
	assert.True(t, strings.HasPrefix(prepared.DataURL, "data:image/jpeg;base64,"))

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(prepared.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
}

func TestPrepareKeepsSmallImages(t *testing.T) {
	svc := NewImageService(0, 0, nil, zap.NewNop())

	prepared, err := svc.Prepare(pngBytes(t, 40, 30))
	require.NoError(t, err)
	assert.Equal(t, 40, prepared.Width)
	assert.Equal(t, 30, prepared.Height)
}

func TestPrepareRejectsGarbage(t *testing.T) {
	svc := NewImageService(0, 0, nil, zap.NewNop())

	_, err := svc.Prepare([]byte("not an image"))
	assert.Error(t, err)
}

func TestFromDrive(t *testing.T) {
	t.Run("disabled without a downloader", func(t *testing.T) {
		svc := NewImageService(0, 0, nil, zap.NewNop())

		_, err := svc.FromDrive(context.Background(), "file-1")
		assert.ErrorIs(t, err, ErrDriveDisabled)
	})

	t.Run("downloads and prepares", func(t *testing.T) {
		drive := &fakeDownloader{data: pngBytes(t, 20, 20)}
		svc := NewImageService(0, 0, drive, zap.NewNop())

		prepared, err := svc.FromDrive(context.Background(), "file-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"file-1"}, drive.ids)
		assert.Equal(t, 20, prepared.Width)
	})

	t.Run("download error is returned", func(t *testing.T) {
		drive := &fakeDownloader{err: errors.New("404")}
		svc := NewImageService(0, 0, drive, zap.NewNop())

		_, err := svc.FromDrive(context.Background(), "missing")
		assert.EqualError(t, err, "404")
	})
}
