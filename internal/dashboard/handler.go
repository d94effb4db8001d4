package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
	"github.com/wjct-public-media/delivery-dashboard/internal/metrics"
	"github.com/wjct-public-media/delivery-dashboard/internal/report"
	"github.com/wjct-public-media/delivery-dashboard/internal/service"
	"github.com/wjct-public-media/delivery-dashboard/internal/timeline"
)

// SnapshotSource provides the current data snapshot.
type SnapshotSource interface {
	Snapshot() service.Snapshot
}

// RefreshTrigger requests an out-of-band data refresh.
type RefreshTrigger interface {
	TriggerManual()
}

// ClassifierSource provides the status classifier in effect.
type ClassifierSource interface {
	Current() *domain.Classifier
}

// Handler serves the dashboard pages and the view-state API.
type Handler struct {
	renderer    Renderer
	snapshots   SnapshotSource
	refresher   RefreshTrigger
	classifiers ClassifierSource
	logger      *zap.Logger
	now         func() time.Time

	mu   sync.Mutex
	view *timeline.ViewState
}

// HandlerConfig holds the dependencies for a Handler.
type HandlerConfig struct {
	Renderer    Renderer
	Snapshots   SnapshotSource
	Refresher   RefreshTrigger
	Classifiers ClassifierSource
	Logger      *zap.Logger
	Now         func() time.Time // defaults to time.Now
}

// NewHandler creates a Handler with injected dependencies.
func NewHandler(cfg HandlerConfig) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		renderer:    cfg.Renderer,
		snapshots:   cfg.Snapshots,
		refresher:   cfg.Refresher,
		classifiers: cfg.Classifiers,
		logger:      cfg.Logger,
		now:         now,
		view:        timeline.NewViewState(),
	}
}

// RegisterRoutes registers all dashboard routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/api/health", h.handleHealth)
	r.Get("/api/metrics.svg", h.handleMetricsChart)
	r.Post("/api/refresh", h.handleRefresh)
	r.Post("/api/view/zoom", h.handleZoom)
	r.Post("/api/view/range", h.handleRange)
	r.Post("/api/view/label-width", h.handleLabelWidth)
	r.Post("/api/view/toggle", h.handleToggle)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap := h.snapshots.Snapshot()
	today := dates.Midnight(h.now())

	h.mu.Lock()
	state := h.view.Clone()
	h.mu.Unlock()

	data := PageData{
		Timeline:    timeline.Build(snap, state, h.classifiers.Current(), today),
		Summary:     report.Summarize(snap.Issues),
		Urgent:      report.UrgentDeadlines(snap.Issues, today),
		Active:      report.ActiveWork(snap.Issues),
		Blocked:     report.Blocked(snap.Issues),
		InReview:    report.InReview(snap.Issues),
		Done:        report.RecentlyDone(snap.Issues),
		Today:       today,
		LastUpdated: snap.LastUpdated,
	}

	if err := h.renderer.RenderDashboard(w, data); err != nil {
		h.logger.Error("render dashboard failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := h.snapshots.Snapshot()
	if err := h.renderer.RenderHealth(w, snap.LastUpdated); err != nil {
		h.logger.Error("render health failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) handleMetricsChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")

	snap := h.snapshots.Snapshot()
	metrics.RenderChart(w, metrics.CountByStatus(snap.Issues))
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	h.refresher.TriggerManual()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshing"})
}

func (h *Handler) handleZoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta float64 `json:"delta"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	snap := h.snapshots.Snapshot()
	today := dates.Midnight(h.now())

	h.mu.Lock()
	current := h.view.RangeMonths
	if current == 0 {
		// Zooming out of auto mode pins the range at its current extent
		// first, so the gesture feels continuous.
		current = timeline.ComputeRange(snap.Projects, 0, today).MonthCount()
	}
	h.view.SetRangeMonths(timeline.ZoomMonths(float64(current), body.Delta))
	state := h.view.Clone()
	h.mu.Unlock()

	writeViewState(w, state)
}

func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Months int `json:"months"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	h.mu.Lock()
	h.view.SetRangeMonths(body.Months)
	state := h.view.Clone()
	h.mu.Unlock()

	writeViewState(w, state)
}

func (h *Handler) handleLabelWidth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Px int `json:"px"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	h.mu.Lock()
	h.view.SetLabelWidth(body.Px)
	state := h.view.Clone()
	h.mu.Unlock()

	writeViewState(w, state)
}

// Toggle kinds accepted by the view API. Each addresses one accordion
// level by row identity.
const (
	toggleInitiative    = "initiative"
	toggleProject       = "project"
	toggleProjectClosed = "project-closed"
)

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
		Key  string `json:"key"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	switch body.Kind {
	case toggleInitiative:
		h.view.ToggleInitiativeAccordion(body.Key)
	case toggleProject:
		h.view.ToggleProject(body.Key)
	case toggleProjectClosed:
		h.view.ToggleProjectAccordion(body.Key)
	default:
		h.mu.Unlock()
		http.Error(w, "unknown toggle kind", http.StatusBadRequest)
		return
	}
	state := h.view.Clone()
	h.mu.Unlock()

	writeViewState(w, state)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeViewState(w http.ResponseWriter, state *timeline.ViewState) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}
