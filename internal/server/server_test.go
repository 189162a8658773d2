package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphsig/pkg/cache"
	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/observability"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// squareDoc is a 4-cycle a-b-c-d.
var squareDoc = graph.Document{
	Vertices: []graph.Vertex{
		{ID: "a", Symbol: "C"},
		{ID: "b", Symbol: "C"},
		{ID: "c", Symbol: "C"},
		{ID: "d", Symbol: "C"},
	},
	Edges: []graph.EdgeRef{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "d"},
		{From: "d", To: "a"},
	},
}

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	c, err := cache.NewMemoryCache(64)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	observability.NewPrometheusHooks(reg).Install()
	t.Cleanup(observability.Reset)

	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger, Config{Gatherer: reg}), reg
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestSignatureEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	body := GraphRequest{Graph: squareDoc, Root: 0, Options: pipeline.DefaultOptions()}

	rec := do(t, s, http.MethodPost, "/v1/signature", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result pipeline.SignatureResult `json:"result"`
		Cached bool                     `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Cached)
	assert.True(t, resp.Result.Canonical)
	assert.Equal(t, 4, resp.Result.VertexCount)
	assert.Equal(t, "[C]([C]([C,1])[C]([C,1]))", resp.Result.Signature)

	rec = do(t, s, http.MethodPost, "/v1/signature", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cached, "second request should be served from cache")
}

func TestSignatureOptionsDefaultWhenOmitted(t *testing.T) {
	s, _ := newTestServer(t)
	graphJSON, err := json.Marshal(squareDoc)
	require.NoError(t, err)

	// No options: maximum height. Height 1 must be honoured when given.
	rec := do(t, s, http.MethodPost, "/v1/signature", `{"graph":`+string(graphJSON)+`,"root":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"height":-1`)

	rec = do(t, s, http.MethodPost, "/v1/signature", `{"graph":`+string(graphJSON)+`,"options":{"height":1}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"signature":"[C]([C][C])"`)
}

func TestLabellingEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/labelling", GraphRequest{Graph: squareDoc, Root: 1, Options: pipeline.DefaultOptions()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result pipeline.LabellingResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Result.Labelling, 4)
	assert.Equal(t, 0, resp.Result.Labelling[1], "root gets label 0")
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, resp.Result.Labelling)
}

func TestClassifyEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/classify", GraphRequest{Graph: squareDoc, Options: pipeline.DefaultOptions()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result pipeline.ClassesResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Result.Classes, 1, "all vertices of a 4-cycle are equivalent")
	assert.Equal(t, []int{0, 1, 2, 3}, resp.Result.Classes[0].Members)
}

func TestParseEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/parse", ParseRequest{Signature: "[C]([C,1][C,1])", Rebuild: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result pipeline.ParseResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Result.Nodes)
	assert.Equal(t, []int{1}, resp.Result.Colors)
	require.NotNil(t, resp.Result.Graph)
	assert.Len(t, resp.Result.Graph.Vertices, 2)
}

func TestErrorResponses(t *testing.T) {
	badGraph := squareDoc
	badGraph.Edges = append([]graph.EdgeRef{}, squareDoc.Edges...)
	badGraph.Edges = append(badGraph.Edges, graph.EdgeRef{From: "a", To: "zzz"})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   errs.Code
	}{
		{"malformed JSON", "/v1/signature", `{"graph":`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"empty body", "/v1/parse", ` `, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown field", "/v1/parse", `{"sig":"[C]"}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown vertex", "/v1/signature", GraphRequest{Graph: badGraph}, http.StatusBadRequest, errs.ErrCodeInvalidGraph},
		{"empty graph", "/v1/classify", GraphRequest{}, http.StatusBadRequest, errs.ErrCodeInvalidGraph},
		{"root out of range", "/v1/signature", GraphRequest{Graph: squareDoc, Root: 9}, http.StatusBadRequest, errs.ErrCodeInvalidRoot},
		{"bad invariant", "/v1/signature", GraphRequest{Graph: squareDoc, Options: pipeline.Options{InvariantType: "x"}}, http.StatusBadRequest, errs.ErrCodeInvalidInvariantType},
		{"malformed signature", "/v1/parse", ParseRequest{Signature: "[C]("}, http.StatusBadRequest, errs.ErrCodeInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(`{"signature":"("}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", decodeError(t, rec).RequestID)
}

func TestContentTypeRequired(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(`{"signature":"[C]"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/signature", GraphRequest{Graph: squareDoc, Options: pipeline.DefaultOptions()})
	do(t, s, http.MethodPost, "/v1/parse", ParseRequest{Signature: "("})

	rec := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `graphsig_http_requests_total{method="POST",route="/v1/signature",status="200"} 1`)
	assert.Contains(t, body, `graphsig_http_errors_total{method="POST",route="/v1/parse"} 1`)
	assert.Contains(t, body, `graphsig_signatures_total{op="signature",outcome="ok"} 1`)
	assert.Contains(t, body, `graphsig_cache_operations_total{key_type="signature",result="miss"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.EqualValues(t, DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.NotNil(t, cfg.Gatherer)
}
