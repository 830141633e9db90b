// Package upload stores media files posted by the admin panel and returns the
// public URL to put in the site config.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted file, in bytes.
const MaxSize = 20 << 20

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmpty           = errors.New("empty file")
)

type Uploader interface {
	Provider() string
	Upload(ctx context.Context, name string, r io.Reader) (url string, err error)
}

// File is a validated upload held in memory.
type File struct {
	Name string
	Data []byte
	MIME *mimetype.MIME
}

// Read loads at most MaxSize bytes from r and checks that the content is an
// image or a video. The declared name is kept only for logging.
func Read(name string, r io.Reader) (File, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return File{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return File{}, ErrEmpty
	}
	if len(data) > MaxSize {
		return File{}, fmt.Errorf("%w: limit is %d MiB", ErrTooLarge, MaxSize>>20)
	}

	mt := mimetype.Detect(data)
	if !accepted(mt) {
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}
	return File{Name: name, Data: data, MIME: mt}, nil
}

func accepted(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		s := m.String()
		if strings.HasPrefix(s, "image/") || strings.HasPrefix(s, "video/") {
			return true
		}
	}
	return false
}
