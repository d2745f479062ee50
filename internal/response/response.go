// Package response renders the JSON envelope shared by every API
// endpoint.
package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jobportal/internal/contextutils"
	"jobportal/internal/services"

	"go.uber.org/zap"
)

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
	Version   string       `json:"version,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Builder helps construct standardized responses
type Builder struct {
	logger  *zap.Logger
	version string
}

// NewBuilder creates a new response builder
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger, version: "v1"}
}

// WriteSuccess writes a 200 envelope with the given payload.
func (b *Builder) WriteSuccess(ctx context.Context, w http.ResponseWriter, data interface{}) {
	b.write(ctx, w, http.StatusOK, &APIResponse{Success: true, Data: data})
}

// WriteCreated writes a 201 envelope with the created resource.
func (b *Builder) WriteCreated(ctx context.Context, w http.ResponseWriter, data interface{}) {
	b.write(ctx, w, http.StatusCreated, &APIResponse{Success: true, Data: data})
}

// WriteNoContent writes an empty 204 response.
func (b *Builder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError converts err to its envelope and status. Unknown errors
// become masked 500s.
func (b *Builder) WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	svcErr := services.GetServiceError(err)

	detail := &ErrorDetail{
		Type:    svcErr.Type,
		Message: svcErr.Message,
		Code:    svcErr.Code,
		Details: svcErr.Details,
	}
	if svcErr.GetStatusCode() >= http.StatusInternalServerError {
		b.logger.Error("Request failed",
			zap.String("request_id", contextutils.GetRequestID(ctx)),
			zap.Error(err),
		)
		detail.Message = "internal server error"
		detail.Details = nil
	}

	b.write(ctx, w, svcErr.GetStatusCode(), &APIResponse{Success: false, Error: detail})
}

func (b *Builder) write(ctx context.Context, w http.ResponseWriter, status int, resp *APIResponse) {
	resp.RequestID = contextutils.GetRequestID(ctx)
	resp.Timestamp = time.Now().Unix()
	resp.Version = b.version

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}
