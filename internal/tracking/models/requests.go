package models

import (
	"fmt"
	"strings"

	"atelier/pkg/platform/sentinel"
	"atelier/pkg/platform/validation"
)

// SaveConsentRequest carries a complete consent decision from the banner.
// Necessary is accepted for symmetry with the stored record but may not be false.
type SaveConsentRequest struct {
	Necessary  *bool `json:"necessary,omitempty"`
	Analytics  bool  `json:"analytics"`
	Marketing  bool  `json:"marketing"`
	Location   bool  `json:"location"`
	Activities bool  `json:"activities"`
}

// Validate checks that the request is well-formed.
func (r *SaveConsentRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("request is required: %w", sentinel.ErrBadRequest)
	}
	if r.Necessary != nil && !*r.Necessary {
		return fmt.Errorf("necessary cookies cannot be declined: %w", sentinel.ErrInvalidInput)
	}
	return nil
}

// PageViewRequest records that a page was viewed.
type PageViewRequest struct {
	Page string `json:"page"`
}

// Normalize trims surrounding whitespace.
func (r *PageViewRequest) Normalize() {
	if r == nil {
		return
	}
	r.Page = strings.TrimSpace(r.Page)
}

// Validate checks that the request is well-formed.
func (r *PageViewRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("request is required: %w", sentinel.ErrBadRequest)
	}
	return validatePage(r.Page, true)
}

// InteractionRequest records a free-form action on a page. An empty Page
// means the page the visitor is currently on.
type InteractionRequest struct {
	Action     string `json:"action"`
	Page       string `json:"page,omitempty"`
	DurationMS *int64 `json:"duration_ms,omitempty"`
}

// Normalize trims surrounding whitespace.
func (r *InteractionRequest) Normalize() {
	if r == nil {
		return
	}
	r.Action = strings.TrimSpace(r.Action)
	r.Page = strings.TrimSpace(r.Page)
}

// Validate checks that the request is well-formed.
func (r *InteractionRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("request is required: %w", sentinel.ErrBadRequest)
	}
	if err := validation.CheckRequired("action", r.Action); err != nil {
		return err
	}
	if err := validation.CheckStringLength("action", r.Action, validation.MaxActionLength); err != nil {
		return err
	}
	if err := validation.CheckNonNegative("duration_ms", r.DurationMS); err != nil {
		return err
	}
	return validatePage(r.Page, false)
}

// Coordinates are what a device geolocation API reports.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InRange reports whether the coordinates are valid degrees.
func (c Coordinates) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// LocationReport is the browser's answer from its geolocation API: either
// coordinates or an error description. Both empty means the API was absent.
type LocationReport struct {
	Coords *Coordinates `json:"coords,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Normalize trims the error description.
func (r *LocationReport) Normalize() {
	if r == nil {
		return
	}
	r.Error = strings.TrimSpace(r.Error)
}

// Validate checks that the report is well-formed.
func (r *LocationReport) Validate() error {
	if r == nil {
		return fmt.Errorf("request is required: %w", sentinel.ErrBadRequest)
	}
	return validation.CheckStringLength("error", r.Error, validation.MaxLocationErrorLength)
}

func validatePage(page string, required bool) error {
	if required {
		if err := validation.CheckRequired("page", page); err != nil {
			return err
		}
	}
	return validation.CheckStringLength("page", page, validation.MaxPageLength)
}
