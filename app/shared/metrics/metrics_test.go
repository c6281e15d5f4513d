package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRoundMetrics(reg, "golf")
	ctx := context.Background()

	m.RecordShot(ctx, "Driver")
	m.RecordShot(ctx, "Driver")
	m.RecordShot(ctx, "Putter")
	points := 2
	m.RecordHoleCompleted(ctx, 4, &points)
	m.RecordHoleCompleted(ctx, 7, nil)
	m.RecordRoundCompleted(ctx, 18)
	m.RecordStaleHoleData(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.shots.WithLabelValues("Driver")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shots.WithLabelValues("Putter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stale))

	expected := `
# HELP golf_round_hole_stableford_points Stableford points per completed hole.
# TYPE golf_round_hole_stableford_points histogram
golf_round_hole_stableford_points_bucket{le="0"} 0
golf_round_hole_stableford_points_bucket{le="1"} 0
golf_round_hole_stableford_points_bucket{le="2"} 1
golf_round_hole_stableford_points_bucket{le="3"} 1
golf_round_hole_stableford_points_bucket{le="4"} 1
golf_round_hole_stableford_points_bucket{le="5"} 1
golf_round_hole_stableford_points_bucket{le="+Inf"} 1
golf_round_hole_stableford_points_sum 2
golf_round_hole_stableford_points_count 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "golf_round_hole_stableford_points"))
}

func TestOperationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCourseMetrics(reg, "golf")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "SearchCourses", "CourseService")
	m.RecordOperationSuccess(ctx, "SearchCourses", "CourseService")
	m.RecordOperationFailure(ctx, "SearchCourses", "CourseService")
	m.RecordOperationDuration(ctx, "SearchCourses", "CourseService", 20*time.Millisecond)
	m.RecordHoleFallback(ctx, "not_found")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("SearchCourses", "CourseService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("SearchCourses", "CourseService", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("SearchCourses", "CourseService", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
