package metrics

import (
	"context"
	"time"
)

// Noop satisfies every metrics interface and records nothing.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (*Noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (*Noop) RecordOperationFailure(context.Context, string, string)                 {}
func (*Noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*Noop) RecordHoleFallback(context.Context, string)                             {}
func (*Noop) RecordShot(context.Context, string)                                     {}
func (*Noop) RecordHoleCompleted(context.Context, int, *int)                         {}
func (*Noop) RecordRoundCompleted(context.Context, int)                              {}
func (*Noop) RecordStaleHoleData(context.Context)                                    {}

var (
	_ CourseMetrics = (*Noop)(nil)
	_ RoundMetrics  = (*Noop)(nil)
	_ CourseMetrics = (*PrometheusCourseMetrics)(nil)
	_ RoundMetrics  = (*PrometheusRoundMetrics)(nil)
)
