package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/directmux/internal/media"
	"github.com/maauso/directmux/internal/node"
	"github.com/maauso/directmux/internal/node/id"
	"github.com/maauso/directmux/internal/storage"
)

// ExecutionIDHeader carries the execution ID on node responses.
const ExecutionIDHeader = "X-Execution-ID"

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	node      *node.DirectFFmpegMuxer
	publisher storage.Publisher
	validator *validator.Validate
	logger    *slog.Logger
}

// HandlerOption is a function that configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithPublisher sets where videos go when a request asks for push_to_s3.
func WithPublisher(p storage.Publisher) HandlerOption {
	return func(h *Handlers) {
		if p != nil {
			h.publisher = p
		}
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(n *node.DirectFFmpegMuxer, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		node:      n,
		publisher: storage.NoopPublisher{},
		validator: validator.New(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ObjectInfo handles GET /object_info requests.
func (h *Handlers) ObjectInfo(w http.ResponseWriter, r *http.Request) {
	def := h.node.Definition()
	writeJSON(w, http.StatusOK, map[string]node.Definition{def.Name: def})
}

// Execute handles POST ExecutePath requests.
func (h *Handlers) Execute(w http.ResponseWriter, r *http.Request) {
	executionID := id.Generate()
	w.Header().Set(ExecutionIDHeader, executionID)

	req := ExecuteRequest{Inputs: node.DefaultInputs()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("execution_id", executionID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("execution_id", executionID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	if req.PushToS3 && !h.publisher.Enabled() {
		writeError(w, http.StatusBadRequest, storage.ErrS3NotConfigured.Error(), "S3_NOT_CONFIGURED")
		return
	}

	// The encode runs to completion even if the client goes away
	ctx := context.WithoutCancel(r.Context())

	res, err := h.node.Run(ctx, req.Inputs)
	out := node.FormatOutput(res, err)
	resp := ExecuteResponse{
		ExecutionID: executionID,
		UI:          out.UI,
		Result:      out.Result,
	}

	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, node.ErrInvalidInputs):
			status = http.StatusBadRequest
		case errors.Is(err, media.ErrEncodingFailed):
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("node execution failed",
			slog.String("execution_id", executionID),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, resp)
		return
	}

	if req.PushToS3 {
		url, err := storage.PublishFile(ctx, h.publisher, res.OutputPath)
		if err != nil {
			h.logger.Error("failed to publish video",
				slog.String("execution_id", executionID),
				slog.String("path", res.OutputPath),
				slog.String("error", err.Error()),
			)
			resp.PublishError = err.Error()
			writeJSON(w, http.StatusBadGateway, resp)
			return
		}
		resp.VideoURL = url
	}

	h.logger.Info("node executed",
		slog.String("execution_id", executionID),
		slog.String("video_path", res.OutputPath),
		slog.Bool("push_to_s3", req.PushToS3),
	)

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
