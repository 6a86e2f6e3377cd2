package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/news"
)

type fakeRunner struct {
	calls []app.Options
	err   error
}

func (f *fakeRunner) Run(_ context.Context, opts app.Options) (*app.Result, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &app.Result{
		GeneratedAt: time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC),
		Categories: map[news.Category]*app.CategoryResult{
			news.Infrastructure: {
				Summary: "Compute news.",
				Articles: []news.Article{{
					Title:     "GPU datacenter",
					Source:    "Feed A",
					Summary:   "<p>Big <b>cluster</b> &amp; more</p>" + strings.Repeat("x", 600),
					DaysAgo:   news.IntPtr(2),
					AISummary: "",
				}},
			},
			news.FrontierModels: {},
			news.BuilderTools:   {},
			news.Startups: {
				Articles: []news.Article{{Title: "Cohere", Source: "AI Enterprise Startups", Link: "https://cohere.com", Focus: "Enterprise LLM APIs & NLP"}},
			},
		},
	}, nil
}

func newTestServer(runner Runner, opts Options) (*Server, *metrics.Metrics) {
	m := metrics.New()
	return New(runner, m, slog.New(slog.NewTextHandler(io.Discard, nil)), opts), m
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRun_FastModeResponse(t *testing.T) {
	runner := &fakeRunner{}
	s, _ := newTestServer(runner, Options{})

	rec := doRequest(s, http.MethodPost, "/run", `{"days": 3, "mode": "fast", "fetchContent": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, app.Options{Days: 3}, runner.calls[0])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-10-16T12:00:00Z", body["generated_at"])

	categories := body["categories"].(map[string]interface{})
	require.Len(t, categories, 4)

	frontier := categories["AI Frontier models"].(map[string]interface{})
	assert.Nil(t, frontier["summary"])
	assert.Empty(t, frontier["articles"])

	infra := categories["AI Infrastructure"].(map[string]interface{})
	assert.Equal(t, "Compute news.", infra["summary"])
	article := infra["articles"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "#", article["link"])
	assert.Equal(t, float64(2), article["days_ago"])
	assert.Nil(t, article["ai_summary"])
	summary := article["summary"].(string)
	assert.True(t, strings.HasPrefix(summary, "Big cluster & more"), summary)
	assert.Equal(t, 500, len([]rune(summary)))

	startup := categories["AI startups to watch"].(map[string]interface{})["articles"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Enterprise LLM APIs & NLP", startup["focus"])
}

func TestRun_ModeSelection(t *testing.T) {
	runner := &fakeRunner{}
	s, _ := newTestServer(runner, Options{DefaultDays: 7})

	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/run", `{"mode": "full", "fetchContent": true}`).Code)
	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/run", `{"mode": "full"}`).Code)
	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/run", "").Code)

	assert.Equal(t, []app.Options{
		{Days: 7, FetchFullContent: true, GenerateSummaries: true},
		{Days: 7, GenerateSummaries: true},
		{Days: 7},
	}, runner.calls)
}

func TestRun_BadRequests(t *testing.T) {
	runner := &fakeRunner{}
	s, _ := newTestServer(runner, Options{})

	assert.Equal(t, http.StatusBadRequest, doRequest(s, http.MethodPost, "/run", `{"days": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(s, http.MethodPost, "/run", `{"mode": "turbo"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(s, http.MethodPost, "/run", `{"days": "seven"}`).Code)
	assert.Empty(t, runner.calls)
}

func TestRun_ErrorIs500(t *testing.T) {
	s, _ := newTestServer(&fakeRunner{err: errors.New("boom")}, Options{})

	rec := doRequest(s, http.MethodPost, "/run", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}

func TestRun_CacheServesRepeatedRequests(t *testing.T) {
	runner := &fakeRunner{}
	s, _ := newTestServer(runner, Options{CacheTTL: time.Minute})

	doRequest(s, http.MethodPost, "/run", `{"days": 7}`)
	doRequest(s, http.MethodPost, "/run", `{"days": 7}`)
	doRequest(s, http.MethodPost, "/run", `{"days": 5}`)
	assert.Len(t, runner.calls, 2)
}

func TestRun_CacheLogsEntries(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(&fakeRunner{}, metrics.New(), logger, Options{CacheTTL: time.Minute})

	doRequest(s, http.MethodPost, "/run", `{"days": 7}`)
	doRequest(s, http.MethodPost, "/run", `{"days": 3}`)

	assert.Contains(t, logs.String(), `msg="cached run response" days=3 mode=fast entries=2`)
}

func TestLatest(t *testing.T) {
	s, _ := newTestServer(&fakeRunner{}, Options{})

	assert.Equal(t, http.StatusNotFound, doRequest(s, http.MethodGet, "/api/v1/report/latest", "").Code)

	run := doRequest(s, http.MethodPost, "/run", `{}`)
	latest := doRequest(s, http.MethodGet, "/api/v1/report/latest", "")
	assert.Equal(t, http.StatusOK, latest.Code)
	assert.JSONEq(t, run.Body.String(), latest.Body.String())
}

func TestHealth(t *testing.T) {
	s, m := newTestServer(&fakeRunner{}, Options{})

	rec := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	m.RecordRun(time.Second, errors.New("catalog broken"))
	rec = doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog broken")
}

func TestMetricsEndpoint(t *testing.T) {
	s, m := newTestServer(&fakeRunner{}, Options{})
	m.ArticlesFetched(3)

	rec := doRequest(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ainews_articles_fetched_total 3")
}
