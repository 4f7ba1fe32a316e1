package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easydb/easydb/pkg/httputil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	t.Run("generates a new request ID if none exists", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Context().Value(httputil.RequestIDCtxKey).(string)
			_, err := uuid.Parse(reqID)
			assert.NoError(t, err, "Request ID should be a valid UUID")
		})

		req := httptest.NewRequest("GET", "http://example.com/students", nil)
		w := httptest.NewRecorder()
		RequestID(handler).ServeHTTP(w, req)

		_, err := uuid.Parse(w.Result().Header.Get(RequestIDHeader))
		assert.NoError(t, err, "Response header X-Request-Id should be a valid UUID")
	})

	t.Run("preserves an existing request ID", func(t *testing.T) {
		existing := uuid.New().String()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, existing, r.Context().Value(httputil.RequestIDCtxKey))
		})

		ctx := context.WithValue(context.Background(), httputil.RequestIDCtxKey, existing)
		req := httptest.NewRequest("GET", "http://example.com/students", nil).WithContext(ctx)
		w := httptest.NewRecorder()
		RequestID(handler).ServeHTTP(w, req)

		assert.Equal(t, existing, w.Result().Header.Get(RequestIDHeader))
	})

	t.Run("distinct requests get distinct IDs", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(r.Context().Value(httputil.RequestIDCtxKey).(string)))
		})
		mw := RequestID(handler)

		w1 := httptest.NewRecorder()
		mw.ServeHTTP(w1, httptest.NewRequest("GET", "http://example.com/a", nil))
		w2 := httptest.NewRecorder()
		mw.ServeHTTP(w2, httptest.NewRequest("GET", "http://example.com/b", nil))

		assert.NotEqual(t, w1.Body.String(), w2.Body.String())
	})
}
