package server

import (
	"log/slog"
	"net/http"

	"github.com/maauso/directmux/internal/node"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins. "*" allows any.
	AllowedOrigins []string
}

// DefaultConfig allows any origin.
func DefaultConfig() Config {
	return Config{AllowedOrigins: []string{"*"}}
}

// ExecutePath is the route that runs the muxer node.
const ExecutePath = "/nodes/" + node.Name + "/execute"

// NewRouter wires the node routes behind recovery, logging and CORS.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /object_info", h.ObjectInfo)
	mux.HandleFunc("POST "+ExecutePath, h.Execute)

	return ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)(mux)
}
