package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

const (
	NoteDiscoveryFailed = "Optional stop discovery failed. Planned route will include must-stop locations only."

	DefaultPlacesResultsPerKeyword = 20
	DefaultExportWaypointLimit     = 25
)

// PlannerConfig is fixed for the lifetime of a TripPlanner.
type PlannerConfig struct {
	// False makes every plan fail with domain.ErrMissingCredential.
	CredentialConfigured       bool
	MaxOptionalCandidates      int
	PlacesResultsPerKeyword    int
	DefaultExportWaypointLimit int
	// Used when a request carries no location.
	Location *time.Location
}

type TripPlanner struct {
	cfg     PlannerConfig
	routes  ports.RouteProvider
	places  ports.PlacesProvider
	logger  *zap.Logger
	metrics *metrics.Metrics
	timer   *obs.Timer
}

func NewTripPlanner(
	cfg PlannerConfig,
	routes ports.RouteProvider,
	places ports.PlacesProvider,
	logger *zap.Logger,
	m *metrics.Metrics,
) *TripPlanner {
	if cfg.MaxOptionalCandidates <= 0 {
		cfg.MaxOptionalCandidates = DefaultMaxOptionalCandidates
	}
	if cfg.PlacesResultsPerKeyword <= 0 {
		cfg.PlacesResultsPerKeyword = DefaultPlacesResultsPerKeyword
	}
	if cfg.DefaultExportWaypointLimit <= 0 {
		cfg.DefaultExportWaypointLimit = DefaultExportWaypointLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var timer *obs.Timer
	if m != nil {
		timer = obs.NewTimer(logger, m.OperationDuration)
	} else {
		timer = obs.NewTimer(logger, nil)
	}

	return &TripPlanner{
		cfg:     cfg,
		routes:  routes,
		places:  places,
		logger:  logger,
		metrics: m,
		timer:   timer,
	}
}

// PlanTrip routes the must stops, discovers optional stops along that route,
// fits as many as routing allows, and returns the timed itinerary with its
// exports. Discovery failures become notes; routing failures with no
// optional stops left are returned.
func (p *TripPlanner) PlanTrip(ctx context.Context, req domain.TripPlanRequest) (resp *domain.TripPlanResponse, err error) {
	defer p.timer.Time(ctx, "plan_trip")(&err)
	defer func() { p.countPlan(err) }()

	if !p.cfg.CredentialConfigured {
		return nil, domain.ErrMissingCredential
	}

	loc := req.Location
	if loc == nil {
		loc = p.cfg.Location
	}

	start := strings.TrimSpace(req.StartAddress)
	end := strings.TrimSpace(req.EndAddress)
	if req.RoundTrip {
		end = start
	}

	mustStops := make([]domain.MustStop, 0, len(req.MustStops))
	for _, m := range req.MustStops {
		addr := strings.TrimSpace(m.Address)
		if addr == "" {
			continue
		}
		mustStops = append(mustStops, domain.MustStop{
			Name:           strings.TrimSpace(m.Name),
			Address:        addr,
			ServiceMinutes: m.ServiceMinutes,
		})
	}

	departAt, err := ParseLocalDateTime(req.Date, req.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("plan trip: start time: %w", err)
	}
	windowEnd, err := ParseLocalDateTime(req.Date, req.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("plan trip: end time: %w", err)
	}

	mustAddresses := make([]string, 0, len(mustStops))
	for _, m := range mustStops {
		mustAddresses = append(mustAddresses, m.Address)
	}

	base, err := p.computeBaseRoute(ctx, domain.RouteRequest{
		Origin:        start,
		Destination:   end,
		Intermediates: mustAddresses,
		DepartAt:      departAt,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: base route: %w", err)
	}

	var notes []string
	var candidates []domain.PlaceCandidate

	if req.MaxOptionalStops > 0 && len(req.Keywords) > 0 && base.EncodedPath != "" {
		candidates, err = p.discover(ctx, DiscoveryRequest{
			Keywords:             req.Keywords,
			EncodedPath:          base.EncodedPath,
			MaxResultsPerKeyword: p.cfg.PlacesResultsPerKeyword,
			ExcludeAddresses:     mustAddresses,
			Limit:                p.cfg.MaxOptionalCandidates,
		})
		if err != nil {
			p.logger.Warn("optional stop discovery failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Int("keywords", len(req.Keywords)),
				zap.Error(err),
			)
			if p.metrics != nil {
				p.metrics.DiscoveryFailuresTotal.Inc()
			}
			notes = append(notes, NoteDiscoveryFailed)
			candidates = nil
		}
	}

	it, err := p.assemble(ctx, ItineraryInput{
		StartAddress:           start,
		EndAddress:             end,
		MustStops:              mustStops,
		Candidates:             candidates,
		MaxOptionalStops:       req.MaxOptionalStops,
		OptionalServiceMinutes: req.OptionalServiceMinutes,
		DepartAt:               departAt,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: full route: %w", err)
	}
	notes = append(notes, it.Notes...)

	if it.Shed > 0 {
		p.logger.Info("optional stops dropped to satisfy routing limits",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Int("shed", it.Shed),
			zap.Int("attempts", it.Attempts),
		)
		if p.metrics != nil {
			p.metrics.OptionalStopsShedTotal.Add(float64(it.Shed))
		}
	}

	timed := BuildTimeline(it.Stops, it.Route.LegDriveMinutes, departAt)

	summary := domain.TripSummary{
		TotalStops:        len(it.Stops),
		MustStops:         len(mustStops),
		TotalDriveMinutes: it.Route.TotalDriveMinutes,
		Notes:             notes,
	}
	for _, s := range it.Stops {
		summary.TotalServiceMinutes += s.ServiceMinutes
		if s.Type == domain.StopOptional {
			summary.OptionalStops++
		}
	}
	summary.FitsInWindow = FitsInWindow(
		summary.TotalDriveMinutes,
		summary.TotalServiceMinutes,
		WindowMinutes(departAt, windowEnd),
	)
	if summary.Notes == nil {
		summary.Notes = []string{}
	}

	waypointLimit := req.ExportWaypointLimit
	if waypointLimit <= 0 {
		waypointLimit = p.cfg.DefaultExportWaypointLimit
	}

	addresses := make([]string, 0, len(it.Stops))
	for _, s := range it.Stops {
		addresses = append(addresses, s.Address)
	}

	csv, err := export.BuildCSV(export.StopHeaders, export.StopRows(timed))
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &domain.TripPlanResponse{
		Summary:  summary,
		Stops:    timed,
		Segments: export.BuildMapsSegments(addresses, waypointLimit),
		CSV:      csv,
	}, nil
}

func (p *TripPlanner) computeBaseRoute(ctx context.Context, req domain.RouteRequest) (route domain.Route, err error) {
	defer p.timer.Time(ctx, "base_route")(&err)
	return p.routes.ComputeRoute(ctx, req)
}

func (p *TripPlanner) discover(ctx context.Context, req DiscoveryRequest) (candidates []domain.PlaceCandidate, err error) {
	defer p.timer.Time(ctx, "discover_candidates")(&err)
	return DiscoverCandidates(ctx, p.places, req)
}

func (p *TripPlanner) assemble(ctx context.Context, in ItineraryInput) (it *Itinerary, err error) {
	defer p.timer.Time(ctx, "assemble_itinerary")(&err)
	return AssembleItinerary(ctx, p.routes, in)
}

func (p *TripPlanner) countPlan(err error) {
	if p.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.metrics.PlansTotal.WithLabelValues(outcome).Inc()
}
