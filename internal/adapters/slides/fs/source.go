// Package fs reads slide markup from a directory through afero, so tests can use an
// in-memory filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/spf13/afero"
)

type Source struct {
	fs  afero.Fs
	dir string
}

var _ ports.SlideSource = (*Source)(nil)

func NewSource(fs afero.Fs, dir string) *Source {
	return &Source{fs: fs, dir: dir}
}

// NewOSSource reads from the real filesystem.
func NewOSSource(dir string) *Source {
	return NewSource(afero.NewOsFs(), dir)
}

func (s *Source) Dir() string {
	return s.dir
}

func (s *Source) ReadSlide(ctx context.Context, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, file)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrSlideNotFound)
		}
		return nil, fmt.Errorf("read slide %s: %w", path, err)
	}

	return data, nil
}
