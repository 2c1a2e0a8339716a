package ports

import (
	"context"

	"github.com/bnema/ctxplay/internal/domain"
)

type ScriptRepository interface {
	Load(ctx context.Context) (domain.ScriptDocument, error)
}
