package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/golf-stats/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "modules/course/infrastructure/fixtures/testdata/courses.yaml"

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		HTTP:    config.HTTPConfig{Address: "127.0.0.1:0", RateLimit: 1000, RateBurst: 1000},
		Courses: config.CoursesConfig{FixturePath: fixturePath},
	}
	a, err := Initialize(context.Background(), cfg, observability.NewNoop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Close(ctx)
	})
	return a
}

func call(t *testing.T, h http.Handler, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, url, &buf))
	if out != nil && rr.Code < 300 {
		require.NoError(t, json.NewDecoder(rr.Body).Decode(out))
	}
	return rr.Code
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, call(t, a.Handler(), http.MethodGet, "/healthz", nil, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "disabled", health["database"])

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPlayNineHoles(t *testing.T) {
	a := newTestApp(t)
	h := a.Handler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := a.EventBus.Subscribe(ctx, eventbus.TopicRoundCompleted)
	require.NoError(t, err)

	var tees map[string][]string
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/courses/de-haar/loops/oranje/tees", nil, &tees))
	assert.Equal(t, []string{"Wit", "Geel", "Rood"}, tees["tees"])

	var view rounddomain.View
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/api/rounds", map[string]any{
		"player_id":      "speler-1",
		"course_id":      "de-haar",
		"loop_id":        "oranje",
		"tee_color":      "geel",
		"handicap_index": 18.0,
		"date":           "2026-06-14",
		"start_time":     "09:30",
	}, &view))
	require.Equal(t, rounddomain.StateInProgress, view.State)
	require.Equal(t, 1, view.CurrentHole)
	require.NotNil(t, view.HoleInfo)
	assert.Equal(t, 331, view.RemainingDistance)

	roundURL := "/api/rounds/" + view.RoundID.String()
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, roundURL+"/shots",
		map[string]string{"club": "Driver", "manual": "211", "lie": "fairway"}, &view))
	assert.Equal(t, 120, view.RemainingDistance)

	type finishResult struct {
		Completed bool             `json:"completed"`
		Saved     bool             `json:"saved"`
		View      rounddomain.View `json:"round"`
	}
	var res finishResult
	for hole := 1; hole <= 9; hole++ {
		require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, roundURL+"/holes", map[string]int{"score": 5}, &res), "hole %d", hole)
		assert.Equal(t, hole == 9, res.Completed)
	}
	assert.True(t, res.Saved)
	assert.Equal(t, rounddomain.StateCompleted, res.View.State)

	select {
	case msg := <-events:
		var payload eventbus.RoundCompletedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		msg.Ack()
		assert.Equal(t, view.RoundID.String(), payload.RoundID)
		assert.Equal(t, 45, payload.TotalScore)
		assert.Equal(t, 9, payload.HolesPlayed)
		assert.NotNil(t, payload.Stableford)
	case <-time.After(5 * time.Second):
		t.Fatal("round.completed was not published")
	}

	var history []rounddomain.Round
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/players/speler-1/rounds", nil, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Golfbaan De Haar", history[0].CourseName)

	var after rounddomain.View
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, roundURL, nil, &after))
	assert.Equal(t, rounddomain.StateCompleted, after.State)
	assert.Equal(t, 45, after.Round.TotalScore())

	var stats rounddomain.Stats
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/players/speler-1/stats", nil, &stats))
	assert.Equal(t, 45.0, stats.AverageScore)
	require.Len(t, stats.Clubs, 1)
	assert.Equal(t, "Driver", stats.Clubs[0].Club)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/history/"+view.RoundID.String()+"/scorecard.xlsx", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.Bytes())
}
