package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// IAction is a compound mutation executed inside a single unit of work. The
// writer is the injected transactional context; an error from Perform rolls
// the whole operation back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
