package mockmaps

import (
	"context"
	"fmt"
	"sync"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockPlacesProvider serves canned search results per keyword.
type MockPlacesProvider struct {
	// Fails every search when set.
	Err error
	// Per-keyword failures.
	Errors      map[string]error
	Suggestions []domain.PlaceSuggestion

	mu       sync.Mutex
	results  map[string][]domain.PlaceCandidate
	searches []ports.PlaceSearch
}

func NewMockPlacesProvider(results map[string][]domain.PlaceCandidate) *MockPlacesProvider {
	if results == nil {
		results = map[string][]domain.PlaceCandidate{}
	}
	return &MockPlacesProvider{
		Errors:  map[string]error{},
		results: results,
	}
}

func (p *MockPlacesProvider) SearchAlongRoute(ctx context.Context, search ports.PlaceSearch) ([]domain.PlaceCandidate, error) {
	p.mu.Lock()
	p.searches = append(p.searches, search)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	if err, ok := p.Errors[search.Query]; ok {
		return nil, err
	}

	res := p.results[search.Query]
	if search.MaxResults > 0 && len(res) > search.MaxResults {
		res = res[:search.MaxResults]
	}

	out := make([]domain.PlaceCandidate, len(res))
	copy(out, res)
	return out, nil
}

func (p *MockPlacesProvider) Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	if p.Err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", input, p.Err)
	}
	return p.Suggestions, nil
}

// Searches returns a copy of every search received. Order follows
// arrival and is not deterministic under concurrent callers.
func (p *MockPlacesProvider) Searches() []ports.PlaceSearch {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]ports.PlaceSearch, len(p.searches))
	copy(out, p.searches)
	return out
}
