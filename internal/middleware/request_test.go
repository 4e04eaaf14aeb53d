package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

func TestRequestIDHonorsValidUUID(t *testing.T) {
	mw := New(nil, logger.New("error", "json"), &config.Config{})
	inbound := uuid.New().String()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", inbound)
	w := httptest.NewRecorder()
	mw.RequestID(next).ServeHTTP(w, req)

	assert.Equal(t, inbound, seen)
	assert.Equal(t, inbound, w.Header().Get("X-Request-ID"))
}

func TestRequestIDReplacesNonUUID(t *testing.T) {
	mw := New(nil, logger.New("error", "json"), &config.Config{})

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", `"><script>`)
	w := httptest.NewRecorder()
	mw.RequestID(next).ServeHTTP(w, req)

	require.NotEmpty(t, seen)
	assert.NotEqual(t, `"><script>`, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}
