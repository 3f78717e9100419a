package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/pkg/platform/sentinel"
	"atelier/pkg/platform/validation"
)

func TestNewConsentRecord(t *testing.T) {
	decidedAt := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	record := NewConsentRecord(false, true, false, true, decidedAt)

	assert.True(t, record.Necessary, "necessary is always granted")
	assert.False(t, record.Analytics)
	assert.True(t, record.Marketing)
	assert.Equal(t, decidedAt.UnixMilli(), record.Timestamp)
	assert.True(t, record.Allows(CategoryActivities))
	assert.False(t, record.Allows(CategoryLocation))
	assert.False(t, record.Allows(Category("marketing")))
}

func TestOutcome(t *testing.T) {
	t.Run("success exposes value", func(t *testing.T) {
		o := Success(42)
		v, ok := o.Value()
		assert.True(t, ok)
		assert.Equal(t, 42, v)
		assert.Equal(t, OutcomeSuccess, o.Kind())
		assert.NoError(t, o.Reason())
	})

	t.Run("absent has no value and no reason", func(t *testing.T) {
		o := Absent[ConsentRecord]()
		_, ok := o.Value()
		assert.False(t, ok)
		assert.Equal(t, "absent", o.Kind().String())
		assert.NoError(t, o.Reason())
	})

	t.Run("failed carries the reason", func(t *testing.T) {
		cause := errors.New("bad json")
		o := Failed[UserLocation](cause)
		_, ok := o.Value()
		assert.False(t, ok)
		assert.Equal(t, OutcomeFailed, o.Kind())
		assert.ErrorIs(t, o.Reason(), cause)
	})
}

func TestRequestValidation(t *testing.T) {
	declined := false

	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr error
	}{
		{"consent ok", &SaveConsentRequest{Activities: true}, nil},
		{"consent declining necessary", &SaveConsentRequest{Necessary: &declined}, sentinel.ErrInvalidInput},
		{"page view ok", &PageViewRequest{Page: "/about"}, nil},
		{"page view missing page", &PageViewRequest{}, sentinel.ErrInvalidInput},
		{"page view oversized page", &PageViewRequest{Page: "/" + strings.Repeat("a", validation.MaxPageLength)}, sentinel.ErrInvalidInput},
		{"interaction ok without page", &InteractionRequest{Action: "cta_click"}, nil},
		{"interaction missing action", &InteractionRequest{Page: "/"}, sentinel.ErrInvalidInput},
		{"interaction negative duration", &InteractionRequest{Action: "scroll", DurationMS: ptr(int64(-1))}, sentinel.ErrInvalidInput},
		{"location report ok", &LocationReport{Error: "User denied Geolocation"}, nil},
		{"location report oversized error", &LocationReport{Error: strings.Repeat("e", validation.MaxLocationErrorLength+1)}, sentinel.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalize(t *testing.T) {
	pv := &PageViewRequest{Page: "  /projects  "}
	pv.Normalize()
	assert.Equal(t, "/projects", pv.Page)

	in := &InteractionRequest{Action: " open_gallery ", Page: " /  "}
	in.Normalize()
	assert.Equal(t, "open_gallery", in.Action)
	assert.Equal(t, "/", in.Page)
}

func TestCoordinatesInRange(t *testing.T) {
	assert.True(t, Coordinates{Latitude: 48.85, Longitude: 2.35}.InRange())
	assert.False(t, Coordinates{Latitude: 91, Longitude: 0}.InRange())
	assert.False(t, Coordinates{Latitude: 0, Longitude: -180.5}.InRange())
}

func ptr[T any](v T) *T { return &v }
