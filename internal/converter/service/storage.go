package service

import (
	"fmt"
	"os"
	"path/filepath"

	"dxf-service/internal/dxf/document"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage keeps exported drawings as <root>/<id>.dxf.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Path(id string) string {
	return filepath.Join(s.root, id+".dxf")
}

func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

// Export renders doc and saves it under id. It returns the written path.
func (s *FileStorage) Export(id string, doc *document.Document) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	path := s.Path(id)
	if !doc.Save(path) {
		return "", fmt.Errorf("export %s: %s", id, doc.LastError())
	}
	return path, nil
}

// SaveFile writes already rendered content under id.
func (s *FileStorage) SaveFile(id string, data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	path := s.Path(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
