package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
)

const ProviderLocal = "local"

// Local writes files into a directory served by the HTTP server.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal stores files in dir and builds URLs as baseURL + "/" + file name.
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Provider() string { return ProviderLocal }

func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	f, err := Read(name, r)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uuid.NewString() + f.MIME.Extension()
	if err := renameio.WriteFile(filepath.Join(l.dir, filename), f.Data, 0o644); err != nil {
		return "", err
	}
	return l.baseURL + "/" + filename, nil
}
