package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"atelier/internal/platform/device"
	"atelier/internal/platform/privacy"
	"atelier/internal/tracking/cookie"
	"atelier/internal/tracking/geo"
	"atelier/internal/tracking/metrics"
	"atelier/internal/tracking/models"
	"atelier/pkg/platform/ring"
	"atelier/pkg/requestcontext"
)

// Store persists tracking values in a visitor's cookie jar.
// Error Contract:
// - Save* return an error only when the value cannot be serialized
// - Load* never fail: they report Absent or Failed(reason)
type Store interface {
	SaveConsent(jar cookie.Jar, record models.ConsentRecord) error
	LoadConsent(jar cookie.Jar) models.Outcome[models.ConsentRecord]
	SaveLocation(jar cookie.Jar, location models.UserLocation) error
	LoadLocation(jar cookie.Jar) models.Outcome[models.UserLocation]
	SaveActivities(jar cookie.Jar, activities []models.UserActivity) error
	LoadActivities(jar cookie.Jar) models.Outcome[[]models.UserActivity]
	Clear(jar cookie.Jar)
}

// DeviceLocator asks the visitor's device for its position.
type DeviceLocator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// IPLocator resolves an approximate location from a client IP.
type IPLocator interface {
	Lookup(ctx context.Context, ip string) (*geo.IPLocation, error)
}

type Option func(*Service)

// Service is the tracking facade. It never caches consent: every call
// re-reads the jar it is given.
type Service struct {
	store         Store
	ipLocator     IPLocator
	metrics       *metrics.Metrics
	logger        *slog.Logger
	activityLimit int

	inflight sync.WaitGroup
}

func NewService(store Store, ipLocator IPLocator, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:         store,
		ipLocator:     ipLocator,
		logger:        logger,
		activityLimit: models.MaxActivities,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.activityLimit <= 0 || svc.activityLimit > models.MaxActivities {
		svc.activityLimit = models.MaxActivities
	}
	return svc
}

// WithMetrics sets the metrics instance for the service
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithActivityLimit lowers the activity log cap. Values outside
// 1..MaxActivities fall back to MaxActivities.
func WithActivityLimit(n int) Option {
	return func(s *Service) {
		s.activityLimit = n
	}
}

// SaveConsent stamps and stores a new full consent record, replacing any
// previous decision.
func (s *Service) SaveConsent(ctx context.Context, jar cookie.Jar, req models.SaveConsentRequest) (models.ConsentRecord, error) {
	record := models.NewConsentRecord(req.Analytics, req.Marketing, req.Location, req.Activities, requestcontext.Now(ctx))
	if err := s.store.SaveConsent(jar, record); err != nil {
		return models.ConsentRecord{}, err
	}
	if s.metrics != nil {
		for _, category := range models.Categories {
			s.metrics.IncrementConsentsSaved(string(category), record.Allows(category))
		}
	}
	s.logger.InfoContext(ctx, "consent saved",
		"location", record.Location,
		"activities", record.Activities,
		"analytics", record.Analytics,
		"marketing", record.Marketing,
		"request_id", requestcontext.RequestID(ctx),
	)
	return record, nil
}

// LoadConsent returns the stored consent record. Undecodable records are
// logged and reported as absent.
func (s *Service) LoadConsent(ctx context.Context, jar cookie.Jar) (models.ConsentRecord, bool) {
	return settle(ctx, s, models.ConsentCookie, s.store.LoadConsent(jar))
}

// ReadLocation returns the stored location under the same contract as LoadConsent.
func (s *Service) ReadLocation(ctx context.Context, jar cookie.Jar) (models.UserLocation, bool) {
	return settle(ctx, s, models.LocationCookie, s.store.LoadLocation(jar))
}

// ReadActivities returns the activity log oldest first. A missing or
// undecodable log reads as empty.
func (s *Service) ReadActivities(ctx context.Context, jar cookie.Jar) []models.UserActivity {
	activities, ok := settle(ctx, s, models.ActivitiesCookie, s.store.LoadActivities(jar))
	if !ok || activities == nil {
		return []models.UserActivity{}
	}
	return activities
}

// settle collapses a read outcome to data-or-nothing.
func settle[T any](ctx context.Context, s *Service, name string, outcome models.Outcome[T]) (T, bool) {
	if outcome.Kind() == models.OutcomeFailed {
		s.logger.WarnContext(ctx, "discarding unreadable tracking cookie",
			"cookie", name,
			"error", outcome.Reason(),
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementCookieReadFailures(name)
		}
	}
	return outcome.Value()
}

// CaptureLocation resolves and stores the visitor's location when consent
// allows it: device first, then one IP lookup. Failures are logged and
// never retried. A nil device means the device has no geolocation API.
func (s *Service) CaptureLocation(ctx context.Context, jar cookie.Jar, consent models.ConsentRecord, dev DeviceLocator) {
	if !consent.Location {
		return
	}

	if dev != nil {
		coords, err := dev.Locate(ctx)
		if err == nil {
			s.storeLocation(ctx, jar, models.UserLocation{
				Latitude:  &coords.Latitude,
				Longitude: &coords.Longitude,
				Source:    models.SourceDevice,
			})
			return
		}
		s.countCapture(models.SourceDevice, "failed")
		s.logger.InfoContext(ctx, "device geolocation failed, falling back to IP lookup",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	if s.ipLocator == nil {
		return
	}
	clientIP := requestcontext.ClientIP(ctx)
	start := time.Now()
	loc, err := s.ipLocator.Lookup(ctx, clientIP)
	if s.metrics != nil {
		s.metrics.ObserveIPLookupLatency(time.Since(start).Seconds())
	}
	if err != nil {
		s.countCapture(models.SourceIP, "failed")
		s.logger.WarnContext(ctx, "ip geolocation failed",
			"error", err,
			"client_ip", privacy.AnonymizeIP(clientIP),
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	s.storeLocation(ctx, jar, models.UserLocation{
		Country:   loc.Country,
		Region:    loc.Region,
		City:      loc.City,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Source:    models.SourceIP,
	})
}

// CaptureLocationAsync runs CaptureLocation in the background. The jar must
// be safe for concurrent use. Wait blocks until every started capture ends.
func (s *Service) CaptureLocationAsync(ctx context.Context, jar cookie.Jar, consent models.ConsentRecord, dev DeviceLocator) {
	if !consent.Location {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.CaptureLocation(ctx, jar, consent, dev)
	}()
}

// Wait blocks until background captures have finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (s *Service) storeLocation(ctx context.Context, jar cookie.Jar, location models.UserLocation) {
	location.Timestamp = models.ToMillis(requestcontext.Now(ctx))
	if err := s.store.SaveLocation(jar, location); err != nil {
		s.countCapture(location.Source, "failed")
		s.logger.ErrorContext(ctx, "failed to store location", "error", err)
		return
	}
	s.countCapture(location.Source, "success")
}

func (s *Service) countCapture(source models.LocationSource, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementLocationCaptures(string(source), outcome)
	}
}

// ActivityOption decorates a recorded activity.
type ActivityOption func(*models.UserActivity)

// WithDuration records how long the action lasted.
func WithDuration(d time.Duration) ActivityOption {
	return func(a *models.UserActivity) {
		ms := d.Milliseconds()
		a.Duration = &ms
	}
}

// RecordActivity appends one entry to the activity log when consent allows
// it, evicting the oldest entries past the cap, or while the cookie would be
// too large for the browser to keep. It reports whether the entry was stored.
func (s *Service) RecordActivity(ctx context.Context, jar cookie.Jar, page, action string, consent models.ConsentRecord, opts ...ActivityOption) bool {
	if !consent.Activities {
		if s.metrics != nil {
			s.metrics.IncrementActivitiesSkipped()
		}
		return false
	}

	entry := models.UserActivity{
		Page:      page,
		Action:    action,
		Timestamp: models.ToMillis(requestcontext.Now(ctx)),
	}
	for _, opt := range opts {
		opt(&entry)
	}

	log := ring.From(s.activityLimit, s.ReadActivities(ctx, jar))
	evicted := log.Append(entry)
	trimmed, err := s.saveActivities(jar, log.Items())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store activity log", "error", err)
		return false
	}
	if trimmed > 0 {
		s.logger.InfoContext(ctx, "activity log trimmed to fit cookie size limit",
			"dropped", trimmed,
			"kept", log.Len()-trimmed,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.AddActivitiesTrimmed(trimmed)
		}
	}

	if s.metrics != nil {
		kind := "interaction"
		if action == models.ActionPageView {
			kind = models.ActionPageView
		}
		s.metrics.IncrementActivitiesRecorded(kind, device.Platform(requestcontext.UserAgent(ctx)))
		if evicted {
			s.metrics.IncrementActivitiesEvicted()
		}
	}
	return true
}

// saveActivities stores items, dropping the oldest entries while the cookie
// would be too large for the browser to keep. It returns how many were dropped.
func (s *Service) saveActivities(jar cookie.Jar, items []models.UserActivity) (int, error) {
	for dropped := 0; ; dropped++ {
		err := s.store.SaveActivities(jar, items[dropped:])
		if err == nil {
			return dropped, nil
		}
		if !errors.Is(err, cookie.ErrTooLarge) || len(items)-dropped <= 1 {
			return 0, err
		}
	}
}

// TrackPageView records a page view if the stored consent allows activity tracking.
func (s *Service) TrackPageView(ctx context.Context, jar cookie.Jar, page string) bool {
	consent, ok := s.LoadConsent(ctx, jar)
	if !ok {
		consent = models.ConsentRecord{}
	}
	return s.RecordActivity(ctx, jar, page, models.ActionPageView, consent)
}

// TrackInteraction records a free-form action under the same gating as
// TrackPageView. Callers resolve an unspecified page to the current path.
func (s *Service) TrackInteraction(ctx context.Context, jar cookie.Jar, action, page string, opts ...ActivityOption) bool {
	consent, ok := s.LoadConsent(ctx, jar)
	if !ok {
		consent = models.ConsentRecord{}
	}
	return s.RecordActivity(ctx, jar, page, action, consent, opts...)
}

// ClearAll removes every tracking cookie regardless of consent.
func (s *Service) ClearAll(ctx context.Context, jar cookie.Jar) {
	s.store.Clear(jar)
	if s.metrics != nil {
		s.metrics.IncrementPurges()
	}
	s.logger.InfoContext(ctx, "tracking data cleared", "request_id", requestcontext.RequestID(ctx))
}

// CategoryState reports where a category sits in its consent lifecycle.
func (s *Service) CategoryState(ctx context.Context, jar cookie.Jar, category models.Category) models.CategoryState {
	consent, ok := s.LoadConsent(ctx, jar)
	return s.categoryState(ctx, jar, consent, ok, category)
}

// Status reads the consent decision once and derives every category's state from it.
func (s *Service) Status(ctx context.Context, jar cookie.Jar) models.TrackingStatus {
	status := models.TrackingStatus{
		Categories: make(map[models.Category]models.CategoryState, len(models.Categories)),
	}
	consent, ok := s.LoadConsent(ctx, jar)
	if ok {
		status.Consent = &consent
	}
	for _, category := range models.Categories {
		status.Categories[category] = s.categoryState(ctx, jar, consent, ok, category)
	}
	return status
}

func (s *Service) categoryState(ctx context.Context, jar cookie.Jar, consent models.ConsentRecord, ok bool, category models.Category) models.CategoryState {
	if !ok || !consent.Allows(category) {
		return models.StateNoConsent
	}
	hasData := false
	switch category {
	case models.CategoryLocation:
		_, hasData = s.ReadLocation(ctx, jar)
	case models.CategoryActivities:
		hasData = len(s.ReadActivities(ctx, jar)) > 0
	}
	if hasData {
		return models.StateGrantedWithData
	}
	return models.StateGrantedNoData
}
