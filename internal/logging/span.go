package logging

import (
	"context"
	"time"
	"unicode/utf8"
)

const spanErrMaxLen = 32

// Span emits a start line and returns a context carrying the enriched logger,
// plus a function that emits the matching end line.
//
// Usage:
//
//	ctx, end := logging.Span(ctx, "CMD", "compute.aml", "name", name)
//	defer func() { end(err) }()
//
// Log message format:
//   - Start:   <prefix>:<op>/S
//   - Success: <prefix>:<op>/EOK   (err, elapsed)
//   - Failure: <prefix>:<op>/EFAIL (err, elapsed) at WARN level
func Span(ctx context.Context, prefix, op string, kv ...any) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := FromContext(ctx)
	if len(kv) > 0 {
		logger = logger.With(kv...)
	}
	ctx = WithLogger(ctx, logger)

	logger.Info(ctx, prefix+":"+op+"/S")

	return ctx, func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, prefix+":"+op+"/EOK", "err", "", "elapsed", elapsed)
			return
		}
		logger.Warn(ctx, prefix+":"+op+"/EFAIL", "err", ShortError(err.Error()), "elapsed", elapsed)
	}
}

// ShortError truncates an error message for single-line span logs.
// The cut never splits a multi-byte rune.
func ShortError(msg string) string {
	if len(msg) <= spanErrMaxLen {
		return msg
	}
	cut := spanErrMaxLen
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "..."
}
