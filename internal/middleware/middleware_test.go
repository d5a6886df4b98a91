package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStackRouter(log *zerolog.Logger, opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(Stack(log, opts)...)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	return r
}

func TestActor(t *testing.T) {
	var gotActor string
	h := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = GetActor(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUser, " sup_it ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "sup_it", gotActor)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, gotActor)
}

func TestStack_AccessLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	r := newStackRouter(&log, Options{})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(chimw.RequestIDHeader, "fixed")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fixed", line["request_id"])
	assert.Equal(t, "/ok", line["path"])
	assert.EqualValues(t, http.StatusNoContent, line["status"])
}

func TestStack_RecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	r := newStackRouter(&log, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.NotEmpty(t, line["request_id"])
}

func TestStack_CORSPreflight(t *testing.T) {
	log := zerolog.Nop()
	r := newStackRouter(&log, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", HeaderUser)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestStack_Timeout(t *testing.T) {
	log := zerolog.Nop()
	r := newStackRouter(&log, Options{Timeout: 10 * time.Millisecond})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
