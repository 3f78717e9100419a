package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/tracking/models"
)

func execute(t *testing.T, stdin string, args ...string) (snapshot, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	return snap, nil
}

func TestSimulateThenInspect(t *testing.T) {
	simulated, err := execute(t, "", "simulate", "--consent", "activities", "-p", "/", "-p", "/about", "-p", "/")
	require.NoError(t, err)

	require.NotNil(t, simulated.Consent)
	assert.True(t, simulated.Consent.Activities)
	require.Len(t, simulated.Activities, 3)
	assert.Equal(t, "/about", simulated.Activities[1].Page)
	assert.Equal(t, models.StateGrantedWithData, simulated.States[models.CategoryActivities])
	assert.Equal(t, models.StateNoConsent, simulated.States[models.CategoryLocation])
	assert.NotEmpty(t, simulated.SetCookie)

	inspected, err := execute(t, "", "inspect", "--cookie", simulated.Cookie)
	require.NoError(t, err)
	assert.Equal(t, simulated.Consent, inspected.Consent)
	assert.Equal(t, simulated.Activities, inspected.Activities)
}

func TestInspectFromStdin(t *testing.T) {
	simulated, err := execute(t, "", "simulate", "--consent", "activities", "-i", "open_chat@/contact")
	require.NoError(t, err)

	inspected, err := execute(t, "Cookie: "+simulated.Cookie+"\n", "inspect")
	require.NoError(t, err)
	require.Len(t, inspected.Activities, 1)
	assert.Equal(t, "open_chat", inspected.Activities[0].Action)
	assert.Equal(t, "/contact", inspected.Activities[0].Page)
}

func TestSimulateInteractionWithoutPageUsesRoot(t *testing.T) {
	snap, err := execute(t, "", "simulate", "--consent", "activities", "-i", "download_brochure")
	require.NoError(t, err)
	require.Len(t, snap.Activities, 1)
	assert.Equal(t, "download_brochure", snap.Activities[0].Action)
	assert.Equal(t, "/", snap.Activities[0].Page)
}

func TestInspectCorruptCookies(t *testing.T) {
	snap, err := execute(t, "", "inspect", "--cookie", "cookie_consent=garbage; user_location=%7B")
	require.NoError(t, err)
	assert.Nil(t, snap.Consent)
	assert.Nil(t, snap.Location)
	assert.Empty(t, snap.Activities)
}

func TestInspectRequiresHeader(t *testing.T) {
	_, err := execute(t, "", "inspect")
	assert.Error(t, err)
}

func TestSimulateWithoutConsentRecordsNothing(t *testing.T) {
	snap, err := execute(t, "", "simulate", "-p", "/")
	require.NoError(t, err)
	assert.Nil(t, snap.Consent)
	assert.Empty(t, snap.Activities)
	assert.Empty(t, snap.Cookie)
}

func TestSimulateUnknownCategory(t *testing.T) {
	_, err := execute(t, "", "simulate", "--consent", "telemetry")
	assert.Error(t, err)
}

func TestSimulateLocationAndClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"country_name":"United States","city":"Mountain View"}`))
	}))
	defer srv.Close()

	snap, err := execute(t, "", "simulate", "--consent", "location", "--ip", "8.8.8.8", "--ip-lookup-url", srv.URL)
	require.NoError(t, err)
	require.NotNil(t, snap.Location)
	assert.Equal(t, "Mountain View", snap.Location.City)
	assert.Equal(t, models.SourceIP, snap.Location.Source)

	cleared, err := execute(t, "", "simulate", "--consent", "location,activities", "-p", "/", "--clear")
	require.NoError(t, err)
	assert.Nil(t, cleared.Consent)
	assert.Empty(t, cleared.Activities)
	assert.Empty(t, cleared.Cookie)
	assert.Equal(t, models.StateNoConsent, cleared.States[models.CategoryActivities])
}
