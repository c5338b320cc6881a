package domain

// A point of interest returned by a places search.
// ID is unique per provider; Address is the provider's formatted address.
type PlaceCandidate struct {
	ID       string
	Name     string
	Address  string
	Location Coordinates
}

// An address autocomplete suggestion.
type PlaceSuggestion struct {
	PlaceID string `json:"placeId"`
	Text    string `json:"text"`
}
