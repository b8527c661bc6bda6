package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/xid"

	"pulsegram/internal/config"
	"pulsegram/internal/storage"
)

// data:image/<ext>;base64,<data>
var dataURLPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9]+);base64,(.+)$`)

type UploadService interface {
	SaveDataURL(ctx context.Context, dataURL, prefix string) (string, error)
	SaveMultipart(ctx context.Context, file multipart.File, header *multipart.FileHeader, prefix string) (string, error)
}

type uploadService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadService(storage storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{
		storage: storage,
		cfg:     cfg,
	}
}

// SaveDataURL decodes an inline base64 image and persists it under prefix,
// returning the stored reference.
func (s *uploadService) SaveDataURL(ctx context.Context, dataURL, prefix string) (string, error) {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return "", fmt.Errorf("%w: ожидается data:image/<ext>;base64,<data>", ErrInvalidImage)
	}

	ext := matches[1]
	payload := matches[2]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: повреждённый base64: %v", ErrInvalidImage, err)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("%w: пустые данные", ErrInvalidImage)
	}

	if int64(len(data)) > s.cfg.MaxUploadSize {
		return "", fmt.Errorf("%w (макс. %s)", ErrFileTooLarge, humanize.Bytes(uint64(s.cfg.MaxUploadSize)))
	}

	objectName := uniqueObjectName(prefix, "."+ext)

	return s.storage.Save(ctx, objectName, "image/"+ext, bytes.NewReader(data), int64(len(data)))
}

// SaveMultipart persists a multipart image upload. The content type is sniffed
// from the bytes rather than trusted from the client header.
func (s *uploadService) SaveMultipart(ctx context.Context, file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if header.Size > s.cfg.MaxUploadSize {
		return "", fmt.Errorf("%w (макс. %s)", ErrFileTooLarge, humanize.Bytes(uint64(s.cfg.MaxUploadSize)))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("ошибка при чтении файла: %w", err)
	}

	if int64(len(data)) > s.cfg.MaxUploadSize {
		return "", fmt.Errorf("%w (макс. %s)", ErrFileTooLarge, humanize.Bytes(uint64(s.cfg.MaxUploadSize)))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mtype.String())
	}

	objectName := uniqueObjectName(prefix, mtype.Extension())

	return s.storage.Save(ctx, objectName, mtype.String(), bytes.NewReader(data), int64(len(data)))
}

// uniqueObjectName builds a collision-resistant name so concurrent uploads
// never overwrite each other.
func uniqueObjectName(prefix, ext string) string {
	return fmt.Sprintf("%s/%d_%s%s", prefix, time.Now().UnixMilli(), xid.New().String(), ext)
}
