package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"atelier/internal/platform/device"
	"atelier/internal/tracking/cookie"
	"atelier/internal/tracking/geo"
	"atelier/internal/tracking/models"
	"atelier/internal/tracking/service"
	dErrors "atelier/pkg/domain-errors"
	"atelier/pkg/platform/httputil"
	"atelier/pkg/requestcontext"
)

// Service defines the tracking operations the HTTP surface needs.
type Service interface {
	SaveConsent(ctx context.Context, jar cookie.Jar, req models.SaveConsentRequest) (models.ConsentRecord, error)
	LoadConsent(ctx context.Context, jar cookie.Jar) (models.ConsentRecord, bool)
	CaptureLocation(ctx context.Context, jar cookie.Jar, consent models.ConsentRecord, dev service.DeviceLocator)
	ReadLocation(ctx context.Context, jar cookie.Jar) (models.UserLocation, bool)
	ReadActivities(ctx context.Context, jar cookie.Jar) []models.UserActivity
	TrackPageView(ctx context.Context, jar cookie.Jar, page string) bool
	TrackInteraction(ctx context.Context, jar cookie.Jar, action, page string, opts ...service.ActivityOption) bool
	ClearAll(ctx context.Context, jar cookie.Jar)
	Status(ctx context.Context, jar cookie.Jar) models.TrackingStatus
}

// Handler serves the tracking endpoints. Every response that changes
// tracking state carries the corresponding Set-Cookie headers.
type Handler struct {
	logger   *slog.Logger
	tracking Service
}

// New creates a new tracking Handler.
func New(tracking Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		tracking: tracking,
	}
}

// Register registers the tracking routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tracking", func(r chi.Router) {
		r.Use(cookie.Middleware())
		r.Put("/consent", h.handleSaveConsent)
		r.Get("/consent", h.handleGetConsent)
		r.Post("/pageview", h.handlePageView)
		r.Post("/interaction", h.handleInteraction)
		r.Post("/location", h.handleReportLocation)
		r.Get("/location", h.handleGetLocation)
		r.Get("/activities", h.handleGetActivities)
		r.Get("/status", h.handleStatus)
		r.Delete("/", h.handleClearAll)
	})
}

func (h *Handler) jar(w http.ResponseWriter, r *http.Request) cookie.Jar {
	if jar, ok := cookie.FromContext(r.Context()); ok {
		return jar
	}
	return cookie.NewHTTPJar(w, r)
}

// handleSaveConsent stores a complete new consent decision from the banner.
func (h *Handler) handleSaveConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[models.SaveConsentRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.tracking.SaveConsent(ctx, h.jar(w, r), *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save consent",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save consent"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toConsentResponse(record))
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	record, ok := h.tracking.LoadConsent(r.Context(), h.jar(w, r))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no consent decision recorded"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConsentResponse(record))
}

func (h *Handler) handlePageView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[models.PageViewRequest](w, r, h.logger)
	if !ok {
		return
	}

	recorded := h.tracking.TrackPageView(ctx, h.jar(w, r), req.Page)
	h.logger.DebugContext(ctx, "page view",
		"request_id", requestID,
		"recorded", recorded,
		"device", device.DisplayName(requestcontext.UserAgent(ctx)),
	)
	httputil.WriteJSON(w, http.StatusOK, TrackResponse{Recorded: recorded})
}

func (h *Handler) handleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[models.InteractionRequest](w, r, h.logger)
	if !ok {
		return
	}

	page := req.Page
	if page == "" {
		page = currentPath(r)
	}
	var opts []service.ActivityOption
	if req.DurationMS != nil {
		opts = append(opts, service.WithDuration(time.Duration(*req.DurationMS)*time.Millisecond))
	}

	recorded := h.tracking.TrackInteraction(ctx, h.jar(w, r), req.Action, page, opts...)
	httputil.WriteJSON(w, http.StatusOK, TrackResponse{Recorded: recorded})
}

// handleReportLocation receives what the browser's geolocation API said and
// captures a location when consent allows it. The answer is always 202: the
// page never waits on, or learns about, the outcome.
func (h *Handler) handleReportLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, ok := httputil.Decode[models.LocationReport](w, r, h.logger)
	if !ok {
		return
	}

	jar := h.jar(w, r)
	if consent, ok := h.tracking.LoadConsent(ctx, jar); ok {
		h.tracking.CaptureLocation(ctx, jar, consent, geo.NewReportedDevice(*report))
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	location, ok := h.tracking.ReadLocation(r.Context(), h.jar(w, r))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no location recorded"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLocationResponse(location))
}

func (h *Handler) handleGetActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.tracking.ReadActivities(r.Context(), h.jar(w, r))
	httputil.WriteJSON(w, http.StatusOK, ActivitiesResponse{
		Activities: activities,
		Count:      len(activities),
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := h.tracking.Status(r.Context(), h.jar(w, r))

	res := StatusResponse{Categories: status.Categories}
	if status.Consent != nil {
		consent := toConsentResponse(*status.Consent)
		res.Consent = &consent
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// handleClearAll is the visitor's opt-out. It succeeds whatever the prior state.
func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	h.tracking.ClearAll(r.Context(), h.jar(w, r))
	w.WriteHeader(http.StatusNoContent)
}

// currentPath is the path of the page the visitor is on, taken from the
// Referer header; "/" when unknown.
func currentPath(r *http.Request) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
