package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

func TestRecordLoginAndStreak(t *testing.T) {
	t.Run("Success: consecutive days build the streak", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/v1/login-days", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var summary domain.StreakSummary
		decode(t, w, &summary)
		assert.Equal(t, domain.StreakSummary{Day: "2024-03-10", Streak: 1, LongestStreak: 1}, summary)

		env.now = env.now.Add(24 * time.Hour)
		w = env.do(http.MethodPost, "/api/v1/login-days", "")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &summary)
		assert.Equal(t, 2, summary.Streak)

		w = env.do(http.MethodGet, "/api/v1/streak", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"streak":2,"longestStreak":2}`, w.Body.String())
	})

	t.Run("Time zone decides the calendar day", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/v1/login-days?tz=Europe/Rome", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"day":"2024-03-11"`)
	})

	t.Run("Fail: 400 on unknown time zone", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/api/v1/streak?tz=Mars/Olympus", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid timezone")
	})
}
