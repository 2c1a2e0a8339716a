package ports

import (
	"context"

	"github.com/bnema/ctxplay/internal/domain"
)

type SlideSource interface {
	ReadSlide(ctx context.Context, file string) ([]byte, error)
}

type NavParser interface {
	Parse(markup []byte) (domain.SlideNav, error)
}
