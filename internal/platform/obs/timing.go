package obs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored by the HTTP middleware, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Timer logs operation durations and feeds an optional histogram
// labelled by op and outcome.
type Timer struct {
	logger *zap.Logger
	hist   *prometheus.HistogramVec
}

func NewTimer(logger *zap.Logger, hist *prometheus.HistogramVec) *Timer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{logger: logger, hist: hist}
}

// Time starts timing op. Call the returned func with a pointer to the
// operation's named error result, typically via defer.
func (t *Timer) Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}

		if t.hist != nil {
			t.hist.WithLabelValues(name, outcome).Observe(dur.Seconds())
		}

		if outcome == "error" {
			t.logger.Debug("operation failed",
				zap.String("req_id", reqID),
				zap.String("op", name),
				zap.Int64("dur_ms", dur.Milliseconds()),
				zap.Error(*errp),
			)
			return
		}
		t.logger.Debug("operation done",
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Int64("dur_ms", dur.Milliseconds()),
		)
	}
}
