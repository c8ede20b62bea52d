package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 15MB raw (base64 adds ~33% -> ~20MB encoded)
const maxImageSize = 15 * 1024 * 1024

// ContentPart is a single part of a multimodal prompt. Parts flow from
// the UI boundary through the advisor to the provider without either
// side importing the other.
type ContentPart struct {
	Type      string `json:"type"`       // "text" or "image"
	Text      string `json:"text"`       // for type="text"
	MediaType string `json:"media_type"` // MIME type, e.g. "image/jpeg"
	Data      string `json:"data"`       // base64-encoded image data
	FileName  string `json:"file_name"`  // original filename
}

// imageExts maps file extensions to MIME types for supported image formats.
var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// TextPart wraps plain text as a ContentPart.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart wraps raw image bytes as a base64 ContentPart.
func ImagePart(data []byte, mimeType string) ContentPart {
	return ContentPart{
		Type:      "image",
		MediaType: mimeType,
		Data:      base64.StdEncoding.EncodeToString(data),
	}
}

// LoadImage reads an image from disk and returns it as a ContentPart.
// Unsupported extensions and oversized files are rejected so the
// failure surfaces before any quota is spent on a remote call.
func LoadImage(path string) (*ContentPart, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := imageExts[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %q (want jpg, png, gif or webp)", ext)
	}

	if info.Size() == 0 {
		return nil, fmt.Errorf("empty image file: %s", path)
	}
	if info.Size() > maxImageSize {
		return nil, fmt.Errorf("image too large: %s (%.1f MB, max 15 MB)",
			filepath.Base(path), float64(info.Size())/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}

	part := ImagePart(data, mimeType)
	part.FileName = filepath.Base(path)
	return &part, nil
}
