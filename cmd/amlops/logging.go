package main

import (
	"context"

	"github.com/kompox/amlops/internal/logging"
)

// withCmdRunLogger wraps a command run in a span.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "compute.aml", resourceID)
//	defer func() { cleanup(err) }()
//
// Lines: CMD:<operation>/S, CMD:<operation>/EOK, CMD:<operation>/EFAIL.
// The runId is inherited from the context logger (set in PersistentPreRunE).
func withCmdRunLogger(ctx context.Context, operation, resourceID string) (context.Context, func(err error)) {
	return logging.Span(ctx, "CMD", operation, "resourceId", resourceID)
}
