package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server status and the number of connected event clients",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string `json:"status" doc:"Always ok while the server is serving"`
	SSEClients int    `json:"sseClients" doc:"Connected event stream clients"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	clients := 0
	if s.sseManager != nil {
		clients = s.sseManager.ClientCount()
	}
	return &HealthOutput{Body: HealthResponse{Status: "ok", SSEClients: clients}}, nil
}
