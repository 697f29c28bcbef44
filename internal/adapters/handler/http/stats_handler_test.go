package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	t.Run("Success: empty account", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/api/v1/stats", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"totalModulesStarted": 0,
			"totalModulesCompleted": 0,
			"totalContentsCompleted": 0,
			"totalTracksStarted": 0,
			"totalTracksCompleted": 0,
			"streak": 0,
			"longestStreak": 0
		}`, w.Body.String())
	})

	t.Run("Success: counts completions and logins", func(t *testing.T) {
		env := newTestEnv(t)

		require.Equal(t, http.StatusNoContent, env.do(http.MethodPut, "/api/v1/progress/contents", `{"module_id":"m1","content_id":"c1","is_completed":true}`).Code)
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/login-days", "").Code)

		w := env.do(http.MethodGet, "/api/v1/stats", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalContentsCompleted":1`)
		assert.Contains(t, w.Body.String(), `"streak":1`)
	})

	t.Run("Fail: 400 on bad tz header", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/api/v1/stats?tz=Not/AZone", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
