// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Data  jsoniter.RawMessage `json:"data"`
	Total int                 `json:"total"`
	Error string              `json:"error"`
	Code  string              `json:"code"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c *client) do(method, path, body string) (int, envelope) {
	c.t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	c.router.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	}
	return recorder.Code, decoded
}

func newClient(t *testing.T, checks ...api.HealthCheck) *client {
	t.Helper()

	cfg, err := config.LoadFrom(map[string]string{"DB_DRIVER": "sqlite"})
	require.NoError(t, err)

	catalog := testutil.NewCatalog(t, nil)
	handlers := catalog.Services.Handlers()
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(checks, testutil.DiscardLogger())

	router := api.NewRouter(cfg, testutil.DiscardLogger(), noop.NewTracerProvider().Tracer("test"), handlers)
	return &client{t: t, router: router}
}

func decodeID[T any](t *testing.T, raw jsoniter.RawMessage) T {
	t.Helper()
	var body struct {
		ID T `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.ID
}

/*
TestCatalogAPI drives the lending flow end to end over HTTP.
*/
func TestCatalogAPI(t *testing.T) {
	c := newClient(t)

	// 1. Reference data
	status, body := c.do(http.MethodPost, "/api/v1/genres", `{"name":"Fantasy"}`)
	require.Equal(t, http.StatusCreated, status)
	genreID := decodeID[int64](t, body.Data)

	status, body = c.do(http.MethodPost, "/api/v1/genres", `{"name":"fantasy"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.Code)

	status, body = c.do(http.MethodPost, "/api/v1/authors", `{"first_name":"J.R.R.","last_name":"Tolkien","date_of_birth":"1892-01-03"}`)
	require.Equal(t, http.StatusCreated, status)
	authorID := decodeID[int64](t, body.Data)

	// 2. Book with genres
	status, body = c.do(http.MethodPost, "/api/v1/books", fmt.Sprintf(
		`{"title":"The Hobbit","isbn":"9780547928227","author_id":%d,"genre_ids":[%d]}`, authorID, genreID))
	require.Equal(t, http.StatusCreated, status, body.Error)
	bookID := decodeID[int64](t, body.Data)
	assert.Contains(t, string(body.Data), `"name":"Fantasy"`)

	status, body = c.do(http.MethodPost, "/api/v1/books", `{"title":"Short","isbn":"123"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	// 3. A copy and its lifecycle
	status, body = c.do(http.MethodPost, "/api/v1/instances", fmt.Sprintf(`{"book_id":%d,"imprint":"Houghton Mifflin"}`, bookID))
	require.Equal(t, http.StatusCreated, status, body.Error)
	instanceID := decodeID[string](t, body.Data)
	assert.Contains(t, string(body.Data), `"status":"maintenance"`)

	status, body = c.do(http.MethodPost, "/api/v1/instances/"+instanceID+"/checkout", `{"due_back":"2026-11-01"}`)
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Contains(t, string(body.Data), `"due_back":"2026-11-01"`)

	status, body = c.do(http.MethodPut, "/api/v1/instances/"+instanceID+"/status", `{"status":"available","due_back":"2026-11-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	status, body = c.do(http.MethodPost, "/api/v1/instances/"+instanceID+"/reserve", "")
	require.Equal(t, http.StatusOK, status, body.Error)
	assert.Contains(t, string(body.Data), `"status":"reserved"`)
	assert.Contains(t, string(body.Data), `"due_back":"2026-11-01"`)

	status, body = c.do(http.MethodGet, fmt.Sprintf("/api/v1/instances?book_id=%d&status=reserved", bookID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Total)

	// 4. Restrict and counts
	status, body = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "REFERENTIAL_CONSTRAINT", body.Code)

	status, body = c.do(http.MethodGet, "/api/v1/stats?title=hobbit", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"num_books":1`)
	assert.Contains(t, string(body.Data), `"num_books_matching_title":1`)

	// 5. Malformed and unknown ids
	status, _ = c.do(http.MethodGet, "/api/v1/books/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodGet, "/api/v1/instances/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

/*
TestHealthProbes reports liveness always and readiness per dependency.
*/
func TestHealthProbes(t *testing.T) {
	healthy := newClient(t, api.HealthCheck{Name: "sqlite", Check: func(context.Context) error { return nil }})

	status, _ := healthy.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)

	status, body := healthy.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"ready"`)

	degraded := newClient(t, api.HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("down") }})

	status, body = degraded.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body.Data), `"degraded"`)
}
