package azureml

import (
	"context"

	"github.com/kompox/amlops/internal/logging"
)

// withMethodLogger wraps a driver method in a span.
//
// Usage:
//
//	ctx, cleanup := d.withMethodLogger(ctx, "AmlComputeCreate", "compute", name)
//	defer func() { cleanup(err) }()
//
// Lines: AZML:<method>/S, AZML:<method>/EOK, AZML:<method>/EFAIL
func (d *driver) withMethodLogger(ctx context.Context, method string, kv ...any) (context.Context, func(err error)) {
	kv = append([]any{"driver", "AZML." + method}, kv...)
	return logging.Span(ctx, "AZML", method, kv...)
}
