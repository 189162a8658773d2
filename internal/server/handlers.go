package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/observability"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// GraphRequest is the body of the graph endpoints.
type GraphRequest struct {
	Graph   graph.Document   `json:"graph"`
	Root    int              `json:"root"`
	Options pipeline.Options `json:"options"`
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Signature string `json:"signature"`
	Rebuild   bool   `json:"rebuild,omitempty"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// ResultResponse wraps a pipeline result with its cache status.
type ResultResponse struct {
	Result any  `json:"result"`
	Cached bool `json:"cached"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	req, g, err := s.decodeGraphRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runner.SignatureWithCacheInfo(r.Context(), g, req.Root, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: res, Cached: hit})
}

func (s *Server) handleLabelling(w http.ResponseWriter, r *http.Request) {
	req, g, err := s.decodeGraphRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runner.LabellingWithCacheInfo(r.Context(), g, req.Root, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: res, Cached: hit})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	req, g, err := s.decodeGraphRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runner.ClassifyWithCacheInfo(r.Context(), g, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: res, Cached: hit})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := pipeline.ParseSignature(req.Signature, req.Rebuild)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: res})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeGraphRequest reads a GraphRequest whose options start from the
// pipeline defaults, and builds its graph.
func (s *Server) decodeGraphRequest(w http.ResponseWriter, r *http.Request) (*GraphRequest, *graph.Graph, error) {
	req := GraphRequest{Options: pipeline.DefaultOptions()}
	if err := s.decode(w, r, &req); err != nil {
		return nil, nil, err
	}
	g, err := graph.FromDocument(req.Graph)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "invalid graph")
	}
	return &req, g, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errs.New(errs.ErrCodeInvalidInput, "request body is empty")
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

// writeError classifies err and writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = errs.FromSignatureError(err)
	code := errs.GetCode(err)
	status := errs.HTTPStatus(code)

	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", "code", code, "error", err, "request_id", middleware.GetReqID(r.Context()))
	}

	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   errs.UserMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
