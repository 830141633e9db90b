package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestLocal_Upload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir, "/uploads/")
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, l.Provider())

	url, err := l.Upload(context.Background(), "logo.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	other, err := l.Upload(context.Background(), "logo.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.NotEqual(t, url, other)
}

func TestRead_Rejects(t *testing.T) {
	_, err := Read("notes.txt", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Read("empty.png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmpty)

	big := make([]byte, MaxSize+1)
	copy(big, pngHeader)
	_, err = Read("huge.png", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRead_AcceptsMaxSize(t *testing.T) {
	data := make([]byte, MaxSize)
	copy(data, pngHeader)

	f, err := Read("big.png", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIME.String())
}

func TestLocal_CanceledContext(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Upload(ctx, "logo.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, context.Canceled)
}
