// Package geo holds the two location collaborators: what the visitor's device
// reported, and a third-party IP geolocation service.
package geo

import (
	"context"
	"fmt"

	"atelier/internal/tracking/models"
	"atelier/pkg/platform/sentinel"
)

// ReportedDevice answers a device location request from what the browser's
// geolocation API returned, as posted by the page.
type ReportedDevice struct {
	report models.LocationReport
}

// NewReportedDevice wraps a browser report.
func NewReportedDevice(report models.LocationReport) *ReportedDevice {
	return &ReportedDevice{report: report}
}

// Locate returns the reported coordinates. It fails with ErrUnavailable when
// the device reported an error or no API, and with ErrMalformed when the
// coordinates are out of range.
func (d *ReportedDevice) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	if d.report.Coords == nil {
		if d.report.Error != "" {
			return models.Coordinates{}, fmt.Errorf("device geolocation: %s: %w", d.report.Error, sentinel.ErrUnavailable)
		}
		return models.Coordinates{}, fmt.Errorf("device geolocation not supported: %w", sentinel.ErrUnavailable)
	}
	if !d.report.Coords.InRange() {
		return models.Coordinates{}, fmt.Errorf("device coordinates out of range: %w", sentinel.ErrMalformed)
	}
	return *d.report.Coords, nil
}
