package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithShiftLength(raw string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/business-rules/param", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("shiftLength", raw)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestShiftLengthParam(t *testing.T) {
	for _, raw := range []string{"8", "10"} {
		got, err := shiftLengthParam(requestWithShiftLength(raw))
		require.NoError(t, err, raw)
		assert.Greater(t, got, 0, raw)
	}

	for _, raw := range []string{"0", "-8", "7", "41", "abc", ""} {
		assert.NotPanics(t, func() {
			_, err := shiftLengthParam(requestWithShiftLength(raw))
			assert.Error(t, err, raw)
		}, raw)
	}
}
