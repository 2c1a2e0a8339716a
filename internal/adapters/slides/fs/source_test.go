package fs

import (
	"context"
	"testing"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSlide(t *testing.T) {
	t.Parallel()

	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "deck/intro.html", []byte("<html></html>"), 0o644))

	source := NewSource(mem, "deck")
	data, err := source.ReadSlide(context.Background(), "intro.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	_, err = source.ReadSlide(context.Background(), "outro.html")
	require.ErrorIs(t, err, domain.ErrSlideNotFound)
	assert.ErrorContains(t, err, "outro.html")
}

func TestReadSlideCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(afero.NewMemMapFs(), "deck").ReadSlide(ctx, "intro.html")
	require.ErrorIs(t, err, context.Canceled)
}
