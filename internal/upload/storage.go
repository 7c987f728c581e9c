package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxFileSize = 10 << 20 // 10 MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var (
	ErrFileTooLarge       = errors.New("uploaded file exceeds the size limit")
	ErrFileTypeNotAllowed = errors.New("uploaded file type is not allowed")
)

// Storage persists uploaded images under a local directory served at
// /uploads. Handlers store the returned server-relative path in the entity
// payload; the rest of the system never touches file bytes.
type Storage struct {
	dir string
}

// NewStorage creates the uploads directory if needed
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the directory files are written to
func (s *Storage) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a random name and returns the
// server-relative path ("/uploads/<name>")
func (s *Storage) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > maxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrFileTypeNotAllowed
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload target: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return "/uploads/" + name, nil
}
