package card

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxImageBytes is the default maximum image payload size (5MB,
// the vision API's per-image request limit).
const DefaultMaxImageBytes = 5 * 1024 * 1024

var (
	// ErrUnsupportedFormat is returned for images that are not JPEG, PNG,
	// GIF or WebP.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrPayloadTooLarge is returned when an image exceeds the configured
	// size limit.
	ErrPayloadTooLarge = errors.New("image exceeds maximum size")
)

// mimeTypes maps supported file extensions to their MIME type.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// supportedMIMETypes is the set of MIME types accepted for in-memory
// payloads.
var supportedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImagePayload is a validated image ready to be sent to the vision API.
// The bytes are passed through untouched; no decoding or re-encoding
// happens on this side.
type ImagePayload struct {
	Data     []byte
	MIMEType string
}

// Loader validates image files and buffers into payloads with
// configurable limits.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a new Loader with default settings.
func NewLoader() *Loader {
	return &Loader{maxBytes: DefaultMaxImageBytes}
}

// WithMaxBytes sets a custom maximum payload size.
func (l *Loader) WithMaxBytes(maxBytes int64) *Loader {
	l.maxBytes = maxBytes
	return l
}

// LoadFile reads an image from disk. The format check runs on the file
// extension and the size check on file metadata, so oversized or
// unsupported files are rejected without reading their contents.
func (l *Loader) LoadFile(path string) (*ImagePayload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mimeType, err := MIMETypeForFile(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrPayloadTooLarge, info.Size(), l.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return &ImagePayload{Data: data, MIMEType: mimeType}, nil
}

// LoadBytes validates an in-memory image buffer. When mimeType is empty
// the type is sniffed from the first bytes of the buffer.
func (l *Loader) LoadBytes(data []byte, mimeType string) (*ImagePayload, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !supportedMIMETypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrPayloadTooLarge, len(data), l.maxBytes)
	}
	return &ImagePayload{Data: data, MIMEType: mimeType}, nil
}

// MIMETypeForFile resolves the MIME type for a path from its extension.
func MIMETypeForFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return mimeType, nil
}
