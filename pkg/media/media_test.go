package media

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadImage_PNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	raw := []byte("fake-png-bytes")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	part, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if part.Type != "image" {
		t.Errorf("Expected type 'image', got '%s'", part.Type)
	}
	if part.MediaType != "image/png" {
		t.Errorf("Expected media type 'image/png', got '%s'", part.MediaType)
	}
	if part.FileName != "chart.png" {
		t.Errorf("Expected file name 'chart.png', got '%s'", part.FileName)
	}

	decoded, err := base64.StdEncoding.DecodeString(part.Data)
	if err != nil {
		t.Fatalf("Data is not valid base64: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Error("Decoded data does not match original bytes")
	}
}

func TestLoadImage_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadImage(path)
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported image type") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoadImage_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.jpg")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadImage(path); err == nil {
		t.Fatal("Expected error for empty file")
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestImagePart(t *testing.T) {
	part := ImagePart([]byte{0x89, 0x50}, "image/png")
	if part.Type != "image" || part.MediaType != "image/png" {
		t.Errorf("Unexpected part: %+v", part)
	}
	if part.Data != base64.StdEncoding.EncodeToString([]byte{0x89, 0x50}) {
		t.Error("Data not base64-encoded")
	}
}
