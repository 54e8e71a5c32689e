package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService spills uploads to disk so the document parsers can work
// from a file path. Files are transient: the pipelines remove them before
// the response is produced.
type StorageService interface {
	SaveUpload(file *multipart.FileHeader) (string, error)
	Remove(filePath string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveUpload(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	uniqueFilename := fmt.Sprintf("upload_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) Remove(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
