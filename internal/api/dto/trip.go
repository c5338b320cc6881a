package dto

import (
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

type MustStopRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address" validate:"required"`
	ServiceMinutes int    `json:"serviceMinutes" validate:"min=0"`
}

type TripPlanRequest struct {
	StartAddress           string            `json:"startAddress" validate:"required"`
	EndAddress             string            `json:"endAddress" validate:"required_unless=RoundTrip true"`
	RoundTrip              bool              `json:"roundTrip"`
	DateISO                string            `json:"dateISO" validate:"required,len=10,datetime=2006-01-02"`
	StartTime              string            `json:"startTime" validate:"required,len=5,datetime=15:04"`
	EndTime                string            `json:"endTime" validate:"required,len=5,datetime=15:04"`
	MustStops              []MustStopRequest `json:"mustStops" validate:"dive"`
	MaxOptionalStops       int               `json:"maxOptionalStops" validate:"min=0,max=10"`
	OptionalServiceMinutes int               `json:"optionalServiceMinutes" validate:"min=5,max=60"`
	Keywords               []string          `json:"keywords" validate:"dive,required"`
	ExportWaypointLimit    *int              `json:"exportWaypointLimit" validate:"omitempty,min=1,max=25"`
	TimeZone               string            `json:"timeZone" validate:"omitempty,timezone"`
}

// Normalize trims every free-text field in place.
func (r *TripPlanRequest) Normalize() {
	r.StartAddress = strings.TrimSpace(r.StartAddress)
	r.EndAddress = strings.TrimSpace(r.EndAddress)
	r.DateISO = strings.TrimSpace(r.DateISO)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.TimeZone = strings.TrimSpace(r.TimeZone)

	for i := range r.MustStops {
		r.MustStops[i].Name = strings.TrimSpace(r.MustStops[i].Name)
		r.MustStops[i].Address = strings.TrimSpace(r.MustStops[i].Address)
	}
	for i := range r.Keywords {
		r.Keywords[i] = strings.TrimSpace(r.Keywords[i])
	}
}

// ToDomain converts a validated request. loc may be nil.
func (r TripPlanRequest) ToDomain(loc *time.Location, defaultWaypointLimit int) domain.TripPlanRequest {
	must := make([]domain.MustStop, 0, len(r.MustStops))
	for _, m := range r.MustStops {
		must = append(must, domain.MustStop{
			Name:           m.Name,
			Address:        m.Address,
			ServiceMinutes: m.ServiceMinutes,
		})
	}

	limit := defaultWaypointLimit
	if r.ExportWaypointLimit != nil {
		limit = *r.ExportWaypointLimit
	}

	return domain.TripPlanRequest{
		StartAddress:           r.StartAddress,
		EndAddress:             r.EndAddress,
		RoundTrip:              r.RoundTrip,
		Date:                   r.DateISO,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		Location:               loc,
		MustStops:              must,
		MaxOptionalStops:       r.MaxOptionalStops,
		OptionalServiceMinutes: r.OptionalServiceMinutes,
		Keywords:               append([]string(nil), r.Keywords...),
		ExportWaypointLimit:    limit,
	}
}

type TripSummaryResponse struct {
	TotalStops                int      `json:"totalStops"`
	MustStops                 int      `json:"mustStops"`
	OptionalStops             int      `json:"optionalStops"`
	TotalDriveMinutesEstimate int      `json:"totalDriveMinutesEstimate"`
	TotalServiceMinutes       int      `json:"totalServiceMinutes"`
	FitsInWindow              bool     `json:"fitsInWindow"`
	Notes                     []string `json:"notes"`
}

type TripStopResponse struct {
	Order          int      `json:"order"`
	Type           string   `json:"type"`
	Name           string   `json:"name,omitempty"`
	Address        string   `json:"address"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	EtaISO         string   `json:"etaISO"`
	DepartISO      string   `json:"departISO"`
	ServiceMinutes int      `json:"serviceMinutes"`
}

type TripPlanResponse struct {
	PlanID             string               `json:"planId,omitempty"`
	Summary            TripSummaryResponse  `json:"summary"`
	Stops              []TripStopResponse   `json:"stops"`
	GoogleMapsSegments []domain.MapsSegment `json:"googleMapsSegments"`
	CSV                string               `json:"csv"`
}

func NewTripPlanResponse(planID string, p *domain.TripPlanResponse) TripPlanResponse {
	res := TripPlanResponse{
		PlanID: planID,
		Summary: TripSummaryResponse{
			TotalStops:                p.Summary.TotalStops,
			MustStops:                 p.Summary.MustStops,
			OptionalStops:             p.Summary.OptionalStops,
			TotalDriveMinutesEstimate: p.Summary.TotalDriveMinutes,
			TotalServiceMinutes:       p.Summary.TotalServiceMinutes,
			FitsInWindow:              p.Summary.FitsInWindow,
			Notes:                     p.Summary.Notes,
		},
		Stops:              make([]TripStopResponse, 0, len(p.Stops)),
		GoogleMapsSegments: p.Segments,
		CSV:                p.CSV,
	}
	if res.Summary.Notes == nil {
		res.Summary.Notes = []string{}
	}
	if res.GoogleMapsSegments == nil {
		res.GoogleMapsSegments = []domain.MapsSegment{}
	}

	for _, s := range p.Stops {
		stop := TripStopResponse{
			Order:          s.Order,
			Type:           string(s.Type),
			Name:           s.Name,
			Address:        s.Address,
			EtaISO:         s.ArriveAt.Format(domain.TimestampLayout),
			DepartISO:      s.DepartAt.Format(domain.TimestampLayout),
			ServiceMinutes: s.ServiceMinutes,
		}
		if s.Location != nil {
			lat, lng := s.Location.Lat, s.Location.Lng
			stop.Lat, stop.Lng = &lat, &lng
		}
		res.Stops = append(res.Stops, stop)
	}

	return res
}

type SuggestResponse struct {
	Suggestions []domain.PlaceSuggestion `json:"suggestions"`
}
