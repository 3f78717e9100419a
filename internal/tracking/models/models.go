package models

import "time"

// Cookie slot names. Each logical value lives in exactly one cookie.
const (
	ConsentCookie    = "cookie_consent"
	LocationCookie   = "user_location"
	ActivitiesCookie = "user_activities"
)

// Cookie lifetimes in days.
const (
	ConsentTTLDays  = 365
	LocationTTLDays = 30
	ActivityTTLDays = 30
)

// MaxActivities caps the rolling activity log; older entries are evicted first.
const MaxActivities = 100

// ActionPageView is the action label recorded for page views.
const ActionPageView = "page_view"

// ConsentRecord is a visitor's decision on which tracking categories are permitted.
//
// A record is immutable once written: a new decision produces a full new record
// that overwrites the previous one. Necessary is always true; it exists on the
// wire so banner clients can render the category, not so it can be declined.
type ConsentRecord struct {
	Necessary  bool  `json:"necessary"`
	Analytics  bool  `json:"analytics"`
	Marketing  bool  `json:"marketing"`
	Location   bool  `json:"location"`
	Activities bool  `json:"activities"`
	Timestamp  int64 `json:"timestamp"`
}

// NewConsentRecord builds a record stamped at decidedAt with Necessary forced on.
func NewConsentRecord(analytics, marketing, location, activities bool, decidedAt time.Time) ConsentRecord {
	return ConsentRecord{
		Necessary:  true,
		Analytics:  analytics,
		Marketing:  marketing,
		Location:   location,
		Activities: activities,
		Timestamp:  ToMillis(decidedAt),
	}
}

// Allows reports whether the record permits collection for category.
func (c ConsentRecord) Allows(category Category) bool {
	switch category {
	case CategoryLocation:
		return c.Location
	case CategoryActivities:
		return c.Activities
	default:
		return false
	}
}

// LocationSource says which collaborator produced a location fix.
type LocationSource string

const (
	SourceDevice LocationSource = "device"
	SourceIP     LocationSource = "ip"
)

// UserLocation is the visitor's approximate position. At most one is kept;
// each new resolution overwrites the previous one.
type UserLocation struct {
	Country   string         `json:"country,omitempty"`
	Region    string         `json:"region,omitempty"`
	City      string         `json:"city,omitempty"`
	Latitude  *float64       `json:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Source    LocationSource `json:"source,omitempty"`
}

// UserActivity is one entry of the rolling activity log.
type UserActivity struct {
	Page      string `json:"page"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
	Duration  *int64 `json:"duration,omitempty"`
}

// Category is a consent-gated tracking category with its own data lifecycle.
type Category string

const (
	CategoryLocation   Category = "location"
	CategoryActivities Category = "activities"
)

// Categories lists every gated category in a stable order.
var Categories = []Category{CategoryLocation, CategoryActivities}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == CategoryLocation || c == CategoryActivities
}

// CategoryState is the lifecycle state of one tracked category.
type CategoryState string

const (
	StateNoConsent       CategoryState = "no_consent"
	StateGrantedNoData   CategoryState = "consent_granted_no_data"
	StateGrantedWithData CategoryState = "consent_granted_with_data"
)

// TrackingStatus is one consistent reading of the consent decision and the
// state of every category. Consent is nil when no readable decision exists.
type TrackingStatus struct {
	Consent    *ConsentRecord
	Categories map[Category]CategoryState
}

// ToMillis converts t to epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
