package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotPDF      = errors.New("file must be a PDF document")
	ErrEmptyFile   = errors.New("file is empty")
)

var pdfMagic = []byte("%PDF")

// LocalStorage keeps uploaded files on the local filesystem under basePath.
// Stored paths are relative ("documents/<uuid>.pdf") and resolved against basePath.
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage ensures basePath exists
func NewLocalStorage(basePath string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory: %w", err)
	}
	logger.Info("local storage ready", zap.String("path", abs))
	return &LocalStorage{basePath: abs, logger: logger}, nil
}

// SavePDF validates the upload as a PDF and stores it under subDir with a unique name
func (s *LocalStorage) SavePDF(fh *multipart.FileHeader, subDir string) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return "", ErrNotPDF
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(src, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return "", ErrNotPDF
	}

	return s.save(io.MultiReader(bytes.NewReader(head), src), subDir, ".pdf")
}

func (s *LocalStorage) save(r io.Reader, subDir, ext string) (string, error) {
	dir := filepath.Join(s.basePath, filepath.Clean("/" + subDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create subdirectory: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(strings.Trim(subDir, "/"), name))
	s.logger.Info("file stored", zap.String("path", rel))
	return rel, nil
}

// FullPath resolves a stored relative path, refusing anything outside basePath
func (s *LocalStorage) FullPath(rel string) (string, error) {
	if rel == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.basePath, filepath.Clean("/"+rel))
	if !strings.HasPrefix(full, s.basePath+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Exists reports whether the stored file is present
func (s *LocalStorage) Exists(rel string) bool {
	full, err := s.FullPath(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// Delete removes a stored file; a missing file is not an error
func (s *LocalStorage) Delete(rel string) error {
	full, err := s.FullPath(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
