// Package server provides the HTTP host surface for the muxer node.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

import "github.com/maauso/directmux/internal/node"

// ExecuteRequest is the HTTP request body for running the node.
// Omitted inputs take the node's declared defaults.
type ExecuteRequest struct {
	node.Inputs
	// PushToS3 uploads the finished video to S3.
	PushToS3 bool `json:"push_to_s3"`
}

// ExecuteResponse is the HTTP response after running the node.
type ExecuteResponse struct {
	// ExecutionID identifies this run in logs.
	ExecutionID string `json:"execution_id"`
	// UI is the side-channel text shown by the host.
	UI node.UI `json:"ui"`
	// Result holds the node output: the video path or "Error: <message>".
	Result []string `json:"result"`
	// VideoURL is the S3 URL of the output video (if push_to_s3=true).
	VideoURL string `json:"video_url,omitempty"`
	// PublishError is set when the video was written but the upload failed.
	PublishError string `json:"publish_error,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
