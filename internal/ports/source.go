package ports

import (
	"context"

	"dbcsheet/internal/diag"
	"dbcsheet/internal/types"
)

// WorkbookSourcePort produces the staging collections of one conversion.
// Per-row problems go to the sink; an error means the source could not be
// read at all.
type WorkbookSourcePort interface {
	Load(ctx context.Context, path string, sink diag.Sink) (*types.Staging, error)
}
