package ports

import (
	"context"

	"github.com/bnema/termdemo/internal/domain"
)

type ScriptRepository interface {
	// Load resolves name as a file path first, then as a stored script name.
	Load(ctx context.Context, name string) (domain.Script, error)
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string, script domain.Script, overwrite bool) (string, error)
}
