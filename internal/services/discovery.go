package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/twpayne/go-polyline"
	"golang.org/x/sync/errgroup"
)

// Candidates closer than this are treated as the same place.
const duplicateRadiusMeters = 30.0

// Default ceiling on discovered candidates passed to stop selection.
const DefaultMaxOptionalCandidates = 40

var errEmptyPath = errors.New("encoded path has no points")

type DiscoveryRequest struct {
	Keywords             []string
	EncodedPath          string
	MaxResultsPerKeyword int
	// Addresses of must stops; matching candidates are never returned.
	ExcludeAddresses []string
	// Ceiling on returned candidates; <= 0 uses DefaultMaxOptionalCandidates.
	Limit int
}

// DiscoverCandidates searches each keyword along the path concurrently and
// returns the merged candidates, deduplicated, with must-stop addresses
// excluded and truncated to the limit. Any failing keyword fails the whole
// call, but never cancels its siblings.
func DiscoverCandidates(ctx context.Context, places ports.PlacesProvider, req DiscoveryRequest) ([]domain.PlaceCandidate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(req.EncodedPath))
	if err != nil {
		return nil, fmt.Errorf("discover candidates: decode path: %w", err)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("discover candidates: %w", errEmptyPath)
	}

	keywords := make([]string, 0, len(req.Keywords))
	for _, k := range req.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	results := make([][]domain.PlaceCandidate, len(keywords))

	var g errgroup.Group
	for i, keyword := range keywords {
		g.Go(func() error {
			found, err := places.SearchAlongRoute(ctx, ports.PlaceSearch{
				Query:       keyword,
				EncodedPath: req.EncodedPath,
				MaxResults:  req.MaxResultsPerKeyword,
			})
			if err != nil {
				return fmt.Errorf("discover candidates: keyword %q: %w", keyword, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.PlaceCandidate
	for _, r := range results {
		merged = append(merged, r...)
	}

	candidates := excludeAddresses(dedupeCandidates(merged), req.ExcludeAddresses)

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultMaxOptionalCandidates
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// dedupeCandidates keeps the first of any candidates sharing an id or lying
// within duplicateRadiusMeters of an already kept candidate.
func dedupeCandidates(candidates []domain.PlaceCandidate) []domain.PlaceCandidate {
	seen := make(map[string]struct{}, len(candidates))
	kept := make([]domain.PlaceCandidate, 0, len(candidates))

	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}

		near := false
		for _, k := range kept {
			if domain.HaversineMeters(k.Location, c.Location) < duplicateRadiusMeters {
				near = true
				break
			}
		}
		if near {
			continue
		}

		seen[c.ID] = struct{}{}
		kept = append(kept, c)
	}

	return kept
}

func excludeAddresses(candidates []domain.PlaceCandidate, addresses []string) []domain.PlaceCandidate {
	excluded := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if n := normalizeAddress(a); n != "" {
			excluded = append(excluded, n)
		}
	}
	if len(excluded) == 0 {
		return candidates
	}

	out := candidates[:0:0]
	for _, c := range candidates {
		addr := normalizeAddress(c.Address)

		match := false
		for _, e := range excluded {
			if strings.Contains(addr, e) {
				match = true
				break
			}
		}
		if !match {
			out = append(out, c)
		}
	}
	return out
}

// normalizeAddress trims, lower-cases and collapses internal whitespace.
func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
