// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cotsense/cotsense/internal/catalog"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Catalog and index statistics",
		Tags:        []string{"system"},
	}, s.handleStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodPost,
		Path:        "/api/recommend",
		Summary:     "Search components by natural-language query",
		Tags:        []string{"recommendations"},
	}, s.handleRecommend)

	huma.Register(s.api, huma.Operation{
		OperationID: "explain",
		Method:      http.MethodPost,
		Path:        "/api/explain",
		Summary:     "Generate an explanation for a recommendation",
		Tags:        []string{"explanations"},
	}, s.handleExplain)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-import",
		Method:      http.MethodPost,
		Path:        "/api/admin/import",
		Summary:     "Import a component CSV into the catalog",
		Tags:        []string{"admin"},
	}, s.handleImport)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-reindex",
		Method:      http.MethodPost,
		Path:        "/api/admin/reindex",
		Summary:     "Rebuild the vector index from the catalog",
		Tags:        []string{"admin"},
	}, s.handleReindex)
}

// --- Request/Response types for huma ---

// HealthBody is the JSON body of the health endpoint response.
type HealthBody struct {
	Status            string    `json:"status" example:"healthy" doc:"healthy, degraded, or unhealthy"`
	Timestamp         time.Time `json:"timestamp"`
	Version           string    `json:"version"`
	IndexLoaded       bool      `json:"index_loaded"`
	DatabaseConnected bool      `json:"database_connected"`
}

type healthOutput struct {
	Body HealthBody
}

type statusOutput struct {
	Body StatusBody
}

// StatusBody reports catalog and search statistics.
type StatusBody struct {
	Version           string `json:"version"`
	Components        int    `json:"components"`
	Vectors           int    `json:"vectors"`
	Searches          int    `json:"searches"`
	SearchesToday     int    `json:"searches_today"`
	IndexInSync       bool   `json:"index_in_sync"`
	ExplainConfigured bool   `json:"explain_configured"`
}

type recommendInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" maxLength:"1000" doc:"Search query"`
		TopK  int    `json:"top_k,omitempty" minimum:"0" doc:"Number of recommendations, 0 for the default; values above the configured maximum are capped"`
	}
}

type recommendOutput struct {
	Body RecommendBody
}

// RecommendBody is the recommendation result set.
type RecommendBody struct {
	Components       []catalog.Component `json:"components"`
	Query            string              `json:"query"`
	Total            int                 `json:"total"`
	ProcessingTimeMS float64             `json:"processing_time_ms"`
}

type explainInput struct {
	Body struct {
		ComponentID string `json:"component_id" minLength:"1" doc:"Component ID from a recommendation result"`
		Query       string `json:"query" minLength:"1" maxLength:"1000" doc:"Original search query"`
	}
}

type explainOutput struct {
	Body ExplainBody
}

// ExplainBody is one generated explanation.
type ExplainBody struct {
	Explanation      string  `json:"explanation"`
	ComponentID      string  `json:"component_id"`
	ProcessingTimeMS float64 `json:"processing_time_ms"`
}

type importInput struct {
	RawBody []byte `contentType:"text/csv"`
}

type importOutput struct {
	Body catalog.ImportReport
}

type reindexOutput struct {
	Body ReindexBody
}

// ReindexBody reports the outcome of an index rebuild.
type ReindexBody struct {
	Indexed    int     `json:"indexed"`
	DurationMS float64 `json:"duration_ms"`
}

// --- Handlers ---

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	body := HealthBody{
		Status:    "unhealthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}

	status, err := s.service.Status(ctx)
	if err == nil {
		body.DatabaseConnected = true
		body.IndexLoaded = status.Vectors > 0
	}

	// A populated index is more critical than the database for serving
	// searches.
	switch {
	case body.IndexLoaded:
		body.Status = "healthy"
	case body.DatabaseConnected:
		body.Status = "degraded"
	}

	return &healthOutput{Body: body}, nil
}

func (s *Server) handleStatus(ctx context.Context, _ *struct{}) (*statusOutput, error) {
	status, err := s.service.Status(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("collecting status", err)
	}

	return &statusOutput{Body: StatusBody{
		Version:           Version,
		Components:        status.Components,
		Vectors:           status.Vectors,
		Searches:          status.Searches,
		SearchesToday:     status.SearchesToday,
		IndexInSync:       status.IndexInSync,
		ExplainConfigured: s.service.ExplainConfigured(),
	}}, nil
}

func (s *Server) handleRecommend(ctx context.Context, input *recommendInput) (*recommendOutput, error) {
	started := time.Now()

	components, err := s.service.Recommend(ctx, input.Body.Query, input.Body.TopK)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &recommendOutput{Body: RecommendBody{
		Components:       components,
		Query:            catalog.CleanQuery(input.Body.Query),
		Total:            len(components),
		ProcessingTimeMS: elapsedMS(started),
	}}, nil
}

func (s *Server) handleExplain(ctx context.Context, input *explainInput) (*explainOutput, error) {
	started := time.Now()

	explanation, err := s.service.Explain(ctx, input.Body.ComponentID, input.Body.Query)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &explainOutput{Body: ExplainBody{
		Explanation:      explanation,
		ComponentID:      input.Body.ComponentID,
		ProcessingTimeMS: elapsedMS(started),
	}}, nil
}

func (s *Server) handleImport(ctx context.Context, input *importInput) (*importOutput, error) {
	report, err := s.service.Import(ctx, bytes.NewReader(input.RawBody))
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &importOutput{Body: report}, nil
}

func (s *Server) handleReindex(ctx context.Context, _ *struct{}) (*reindexOutput, error) {
	started := time.Now()

	indexed, err := s.service.Rebuild(ctx)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &reindexOutput{Body: ReindexBody{
		Indexed:    indexed,
		DurationMS: elapsedMS(started),
	}}, nil
}

// mapServiceError converts pipeline error codes into huma status errors.
func mapServiceError(err error) error {
	msg := err.Error()
	switch cotserr.HTTPStatus(err) {
	case http.StatusBadRequest:
		return huma.Error400BadRequest(msg)
	case http.StatusNotFound:
		return huma.Error404NotFound(msg)
	case http.StatusServiceUnavailable:
		return huma.Error503ServiceUnavailable(msg)
	case http.StatusBadGateway:
		return huma.Error502BadGateway(msg)
	default:
		return huma.Error500InternalServerError(msg)
	}
}

func elapsedMS(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000
}
