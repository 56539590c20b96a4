package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dxf-service/internal/dxf/document"
)

func TestExport(t *testing.T) {
	root := filepath.Join(t.TempDir(), "exports")
	s := NewFileStorage(root)

	doc := document.New(document.Millimeters).AddLine(0, 0, 0, 10, 10, 0)
	path, err := s.Export("abc", doc)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(root, "abc.dxf") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasSuffix(string(data), "EOF\n") || !strings.Contains(string(data), "LINE") {
		t.Errorf("exported file does not look like a DXF document")
	}
}

func TestSaveFile(t *testing.T) {
	s := NewFileStorage(t.TempDir())
	path, err := s.SaveFile("x", []byte("0\nEOF\n"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "0\nEOF\n" {
		t.Errorf("content = %q", data)
	}
}
