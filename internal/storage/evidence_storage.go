package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// Типы файлов, принимаемые в качестве доказательств по спору.
var allowedEvidenceTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/zip":    {},
	"image/jpeg":         {},
	"image/png":          {},
	"image/webp":         {},
	"video/mp4":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// EvidenceStorage — файловое хранилище доказательств по спорам.
// Тип файла определяется по содержимому, а не по расширению.
type EvidenceStorage struct {
	rootPath       string
	maxUploadBytes int64
}

func NewEvidenceStorage(rootPath string, maxUploadMB int64) (*EvidenceStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &EvidenceStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save сохраняет доказательство в каталог спора и возвращает относительный
// путь и определённый тип содержимого.
func (s *EvidenceStorage) Save(ctx context.Context, disputeID uuid.UUID, originalName string, data []byte) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	if int64(len(data)) > s.maxUploadBytes {
		return "", "", apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("размер файла превышает лимит %d МБ", s.maxUploadBytes/(1024*1024)))
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", "", apperror.New(apperror.ErrCodeValidation, "не удалось определить тип файла")
	}
	if _, ok := allowedEvidenceTypes[kind.MIME.Value]; !ok {
		return "", "", apperror.New(apperror.ErrCodeValidation, "тип файла не поддерживается для доказательств")
	}

	disputeDir := filepath.Join(s.rootPath, disputeID.String())
	if err := os.MkdirAll(disputeDir, 0o755); err != nil {
		return "", "", fmt.Errorf("storage: не удалось создать каталог спора: %w", err)
	}

	fileName := fmt.Sprintf("%d_%s.%s", time.Now().UnixNano(), sanitizeFilename(originalName), kind.Extension)
	targetPath := filepath.Join(disputeDir, fileName)
	tempPath := targetPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return filepath.Join(disputeID.String(), fileName), kind.MIME.Value, nil
}

// Open возвращает абсолютный путь к файлу доказательства.
func (s *EvidenceStorage) Open(relativePath string) (string, error) {
	clean := filepath.Clean(relativePath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", apperror.New(apperror.ErrCodeBadRequest, "некорректный путь к файлу")
	}
	return filepath.Join(s.rootPath, clean), nil
}

// sanitizeFilename удаляет потенциально опасные символы и расширение:
// расширение проставляется по фактическому типу содержимого.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "evidence"
	}
	return name
}
