// Package proxy implements the browser-facing relay that injects the
// tracker API credential server-side, so the key never reaches the page.
package proxy

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// HTTPClient is the outbound client surface the proxy depends on.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Handler relays POST bodies to the upstream API verbatim, adding the
// Authorization header and CORS headers for allowed origins.
type Handler struct {
	upstreamURL    string
	apiKey         string
	allowedOrigins map[string]bool
	httpClient     HTTPClient
	logger         *zap.Logger
}

// NewHandler creates a proxy handler for the given upstream endpoint.
func NewHandler(upstreamURL, apiKey string, allowedOrigins []string, httpClient HTTPClient, logger *zap.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		upstreamURL:    upstreamURL,
		apiKey:         apiKey,
		allowedOrigins: allowed,
		httpClient:     httpClient,
		logger:         logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !h.allowedOrigins[origin] {
		// No CORS headers and an empty body: the browser reports a
		// blocked cross-origin request rather than leaking detail.
		h.logger.Warn("rejected origin", zap.String("origin", origin))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodOptions:
		writeCORSHeaders(w, origin)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		h.relay(w, r, origin)
	default:
		writeCORSHeaders(w, origin)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// relay forwards the request body upstream and copies the upstream
// status and body back unmodified, CORS headers aside.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, origin string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.upstreamURL, r.Body)
	if err != nil {
		writeCORSHeaders(w, origin)
		http.Error(w, "bad upstream request", http.StatusInternalServerError)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", h.apiKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("upstream request failed", zap.Error(err))
		writeCORSHeaders(w, origin)
		http.Error(w, fmt.Sprintf("upstream unreachable: %v", err), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	writeCORSHeaders(w, origin)
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("response copy interrupted", zap.Error(err))
	}
}

func writeCORSHeaders(w http.ResponseWriter, origin string) {
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
