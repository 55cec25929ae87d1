package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores id in ctx together with a logger tagged with it.
// Downstream code logs through zerolog.Ctx(ctx).
func WithRequestID(ctx context.Context, logger zerolog.Logger, id string) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, id)
	l := logger.With().Str("req_id", id).Logger()
	return l.WithContext(ctx)
}

// RequestID returns the request id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of the operation name when the returned func runs.
// Pass it the address of the named error result:
//
//	defer obs.Time(ctx, "nominatim.search")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		logger := zerolog.Ctx(ctx)

		if errp != nil && *errp != nil {
			logger.Warn().
				Str("op", name).
				Int64("dur_ms", dur.Milliseconds()).
				Err(*errp).
				Msg("operation failed")
			return
		}
		logger.Debug().
			Str("op", name).
			Int64("dur_ms", dur.Milliseconds()).
			Msg("operation complete")
	}
}
