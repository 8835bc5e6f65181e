package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestLoadFileSupportedFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "jpg", filename: "card.jpg", want: "image/jpeg"},
		{name: "jpeg", filename: "card.jpeg", want: "image/jpeg"},
		{name: "uppercase extension", filename: "card.JPG", want: "image/jpeg"},
		{name: "png", filename: "card.png", want: "image/png"},
		{name: "gif", filename: "card.gif", want: "image/gif"},
		{name: "webp", filename: "card.webp", want: "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			data := []byte{0x01, 0x02, 0x03}
			require.NoError(t, os.WriteFile(path, data, 0644))

			payload, err := NewLoader().LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.MIMEType)
			assert.Equal(t, data, payload.Data)
		})
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "txt", filename: "notes.txt"},
		{name: "bmp", filename: "card.bmp"},
		{name: "tiff", filename: "card.tiff"},
		{name: "pdf", filename: "scan.pdf"},
		{name: "no extension", filename: "card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

			_, err := NewLoader().LoadFile(path)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.jpg")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0644))

	_, err := NewLoader().WithMaxBytes(99).LoadFile(path)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	payload, err := NewLoader().WithMaxBytes(100).LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, payload.Data, 100)
}

func TestLoadBytes(t *testing.T) {
	payload, err := NewLoader().LoadBytes([]byte{0xff, 0xd8, 0xff, 0x01}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", payload.MIMEType)

	_, err = NewLoader().LoadBytes([]byte("plain text"), "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewLoader().WithMaxBytes(2).LoadBytes([]byte{0xff, 0xd8, 0xff}, "image/jpeg")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestLoadBytesSniffsMIMEType(t *testing.T) {
	payload, err := NewLoader().LoadBytes(pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", payload.MIMEType)

	_, err = NewLoader().LoadBytes([]byte("definitely not an image"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFilePassThrough(t *testing.T) {
	// The loader must hand the file's bytes to the API untouched.
	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")
	data := append(append([]byte{}, pngHeader...), 0xde, 0xad, 0xbe, 0xef)
	require.NoError(t, os.WriteFile(path, data, 0644))

	payload, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, payload.Data)
}
