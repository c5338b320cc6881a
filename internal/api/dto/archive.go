package dto

import (
	"time"
	"trip-planner-service/internal/ports"
)

type ArchivedPlanResponse struct {
	PlanID       string    `json:"planId"`
	CreatedAt    time.Time `json:"createdAt"`
	StartAddress string    `json:"startAddress"`
	EndAddress   string    `json:"endAddress"`
	TotalStops   int       `json:"totalStops"`
	FitsInWindow bool      `json:"fitsInWindow"`
	Notes        []string  `json:"notes"`
}

func NewArchivedPlanResponse(p ports.ArchivedPlan) ArchivedPlanResponse {
	notes := p.Notes
	if notes == nil {
		notes = []string{}
	}
	return ArchivedPlanResponse{
		PlanID:       p.ID,
		CreatedAt:    p.CreatedAt,
		StartAddress: p.StartAddress,
		EndAddress:   p.EndAddress,
		TotalStops:   p.TotalStops,
		FitsInWindow: p.FitsInWindow,
		Notes:        notes,
	}
}
