package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"atelier/internal/platform/logger"
	"atelier/internal/tracking/cookie"
	"atelier/internal/tracking/geo"
	"atelier/internal/tracking/models"
	"atelier/internal/tracking/service"
	"atelier/internal/tracking/store"
	"atelier/pkg/requestcontext"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "trackctl",
		Short:         "Inspect and simulate visitor tracking cookies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level for tracking diagnostics (written to stderr)")

	newService := func(cmd *cobra.Command, ipLocator service.IPLocator) *service.Service {
		log := logger.NewWithWriter(cmd.ErrOrStderr(), logLevel)
		return service.NewService(store.New(), ipLocator, log)
	}

	root.AddCommand(newInspectCmd(newService), newSimulateCmd(newService))
	return root
}

type serviceFactory func(cmd *cobra.Command, ipLocator service.IPLocator) *service.Service

// snapshot is what trackctl prints: the decoded content of the tracking cookies.
type snapshot struct {
	Consent    *models.ConsentRecord                    `json:"consent"`
	Location   *models.UserLocation                     `json:"location"`
	Activities []models.UserActivity                    `json:"activities"`
	States     map[models.Category]models.CategoryState `json:"states"`
	Cookie     string                                   `json:"cookie,omitempty"`
	SetCookie  []string                                 `json:"set_cookie,omitempty"`
}

func takeSnapshot(ctx context.Context, svc *service.Service, jar *cookie.Store) snapshot {
	status := svc.Status(ctx, jar)
	snap := snapshot{
		Consent:    status.Consent,
		Activities: svc.ReadActivities(ctx, jar),
		States:     status.Categories,
	}
	if location, ok := svc.ReadLocation(ctx, jar); ok {
		snap.Location = &location
	}
	return snap
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newInspectCmd(newService serviceFactory) *cobra.Command {
	var header string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode the tracking cookies in a Cookie header",
		Example: `  trackctl inspect --cookie "cookie_consent={%22necessary%22:true...}; user_activities=..."
  pbpaste | trackctl inspect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if header == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read cookie header from stdin: %w", err)
				}
				header = strings.TrimSpace(string(data))
			}
			header = strings.TrimSpace(strings.TrimPrefix(header, "Cookie:"))
			if header == "" {
				return fmt.Errorf("--cookie or a Cookie header on stdin is required")
			}

			jar := cookie.NewStore()
			jar.Load(header)
			svc := newService(cmd, nil)
			return writeJSON(cmd.OutOrStdout(), takeSnapshot(cmd.Context(), svc, jar))
		},
	}
	cmd.Flags().StringVarP(&header, "cookie", "c", "", "Cookie header value")
	return cmd
}

func newSimulateCmd(newService serviceFactory) *cobra.Command {
	var (
		pages        []string
		interactions []string
		grants       []string
		clientIP     string
		lookupURL    string
		lookupTO     time.Duration
		clearAfter   bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a visit against an in-memory cookie store and print the result",
		Example: `  trackctl simulate --consent activities --page / --page /about --page /
  trackctl simulate --consent location --ip 8.8.8.8 --ip-lookup-url https://ipapi.co`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.SaveConsentRequest{}
			for _, g := range grants {
				switch models.Category(strings.TrimSpace(g)) {
				case models.CategoryLocation:
					req.Location = true
				case models.CategoryActivities:
					req.Activities = true
				case "analytics":
					req.Analytics = true
				case "marketing":
					req.Marketing = true
				default:
					return fmt.Errorf("unknown consent category %q", g)
				}
			}

			var ipLocator service.IPLocator
			if lookupURL != "" {
				ipLocator = geo.NewIPAPIClient(lookupURL, geo.WithTimeout(lookupTO))
			}
			svc := newService(cmd, ipLocator)
			jar := cookie.NewStore()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = requestcontext.WithClientMetadata(ctx, clientIP, "trackctl")

			if len(grants) > 0 {
				if _, err := svc.SaveConsent(ctx, jar, req); err != nil {
					return err
				}
			}
			if consent, ok := svc.LoadConsent(ctx, jar); ok {
				// No device here: capture goes straight to the IP fallback.
				svc.CaptureLocationAsync(ctx, jar, consent, nil)
			}
			for _, page := range pages {
				svc.TrackPageView(ctx, jar, page)
			}
			for _, spec := range interactions {
				action, page, _ := strings.Cut(spec, "@")
				if page == "" {
					page = "/"
				}
				svc.TrackInteraction(ctx, jar, action, page)
			}
			svc.Wait()
			if clearAfter {
				svc.ClearAll(ctx, jar)
			}

			snap := takeSnapshot(ctx, svc, jar)
			snap.Cookie = jar.String()
			snap.SetCookie = jar.Written()
			return writeJSON(cmd.OutOrStdout(), snap)
		},
	}
	cmd.Flags().StringSliceVar(&grants, "consent", nil, "Categories to grant: location, activities, analytics, marketing")
	cmd.Flags().StringArrayVarP(&pages, "page", "p", nil, "Page view to record (repeatable)")
	cmd.Flags().StringArrayVarP(&interactions, "interaction", "i", nil, "Interaction to record as action@page (repeatable)")
	cmd.Flags().StringVar(&clientIP, "ip", "", "Client IP used for the IP geolocation fallback")
	cmd.Flags().StringVar(&lookupURL, "ip-lookup-url", "", "IP geolocation base URL; empty disables location capture")
	cmd.Flags().DurationVar(&lookupTO, "ip-lookup-timeout", 5*time.Second, "IP geolocation timeout")
	cmd.Flags().BoolVar(&clearAfter, "clear", false, "Opt out at the end of the visit")
	return cmd
}
