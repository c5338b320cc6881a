package ports

import (
	"context"
	"errors"
	"time"
)

var ErrPlanNotFound = errors.New("plan not found")

// A stored copy of a produced plan export.
type ArchivedPlan struct {
	ID           string
	CreatedAt    time.Time
	StartAddress string
	EndAddress   string
	TotalStops   int
	FitsInWindow bool
	Notes        []string
	CSV          string
}

// Port: a boundary for keeping produced plan exports available for download.
type PlanArchive interface {
	Save(ctx context.Context, plan ArchivedPlan) error
	Get(ctx context.Context, id string) (ArchivedPlan, error)
}
