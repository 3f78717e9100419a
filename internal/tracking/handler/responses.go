package handler

import (
	"time"

	"atelier/internal/tracking/models"
)

type ConsentResponse struct {
	Necessary  bool   `json:"necessary"`
	Analytics  bool   `json:"analytics"`
	Marketing  bool   `json:"marketing"`
	Location   bool   `json:"location"`
	Activities bool   `json:"activities"`
	Timestamp  int64  `json:"timestamp"`
	DecidedAt  string `json:"decided_at"`
}

func toConsentResponse(r models.ConsentRecord) ConsentResponse {
	return ConsentResponse{
		Necessary:  r.Necessary,
		Analytics:  r.Analytics,
		Marketing:  r.Marketing,
		Location:   r.Location,
		Activities: r.Activities,
		Timestamp:  r.Timestamp,
		DecidedAt:  models.FromMillis(r.Timestamp).Format(time.RFC3339),
	}
}

type LocationResponse struct {
	models.UserLocation
	CapturedAt string `json:"captured_at"`
}

func toLocationResponse(l models.UserLocation) LocationResponse {
	return LocationResponse{
		UserLocation: l,
		CapturedAt:   models.FromMillis(l.Timestamp).Format(time.RFC3339),
	}
}

type TrackResponse struct {
	Recorded bool `json:"recorded"`
}

type ActivitiesResponse struct {
	Activities []models.UserActivity `json:"activities"`
	Count      int                   `json:"count"`
}

type StatusResponse struct {
	Consent    *ConsentResponse                         `json:"consent"`
	Categories map[models.Category]models.CategoryState `json:"categories"`
}
