package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCached(t *testing.T) {
	calls := 0
	h := Cached(time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("bad") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	do := func(uri string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, uri, nil))
		return w
	}

	for i := 0; i < 3; i++ {
		w := do("/v1/feeds/community?page=1")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"ok":true}`, w.Body.String())
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	}
	require.Equal(t, 1, calls)

	do("/v1/feeds/community?page=2")
	require.Equal(t, 2, calls)

	// errors are not cached
	require.Equal(t, http.StatusBadRequest, do("/v1/feeds/community?bad=1").Code)
	require.Equal(t, http.StatusBadRequest, do("/v1/feeds/community?bad=1").Code)
	require.Equal(t, 4, calls)
}
