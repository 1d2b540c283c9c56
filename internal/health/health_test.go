package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metaPinger struct{}

func (metaPinger) Ping(_ context.Context) (interface{}, error) {
	return map[string]int{"views": 2}, nil
}

func (metaPinger) Name() string {
	return "meta"
}

func TestHandler(t *testing.T) {
	tt := []struct {
		name string
		p    []Pinger
		code int
		body string
	}{
		{
			name: "ok",
			p: []Pinger{
				SubjectPinger("postgres", func(_ context.Context) error { return nil }),
				metaPinger{},
			},
			code: http.StatusOK,
			body: `{"version":"dev","commit":"undefined","meta":{"meta":{"views":2}},"errors":{}}`,
		},
		{
			name: "failed",
			p: []Pinger{
				SubjectPinger("postgres", func(_ context.Context) error { return nil }),
				SubjectPinger("redis", func(_ context.Context) error { return errors.New("connection refused") }),
			},
			code: http.StatusServiceUnavailable,
			body: `{"version":"dev","commit":"undefined","meta":{},"errors":{"redis":"connection refused"}}`,
		},
		{
			name: "timeout",
			p: []Pinger{
				SubjectPinger("postgres", func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				}),
			},
			code: http.StatusServiceUnavailable,
			body: `{"version":"dev","commit":"undefined","meta":{},"errors":{"postgres":"context deadline exceeded"}}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r, err := http.NewRequest(http.MethodGet, "http://localhost/health", nil)
			require.NoError(t, err)

			Handler(10*time.Millisecond, tc.p...)(w, r)

			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestGetVersion(t *testing.T) {
	require.Equal(t, "dev-undefined", GetVersion())
}
