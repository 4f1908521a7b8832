package domain

import "strings"

// IIIFSizeSuffix is appended to IIIF base URLs to request a bounded rendition.
const IIIFSizeSuffix = "/full/!400,400/0/default.jpg"

// UnknownMuseum is the label substituted for artworks without a museum field.
const UnknownMuseum = "Unknown"

// Artwork is a single catalog record. Immutable once loaded; the catalog
// store owns the backing slice for the lifetime of the session.
type Artwork struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	DisplayDate    string `json:"displayDate,omitempty"`
	Medium         string `json:"medium,omitempty"`
	Genre          string `json:"genre,omitempty"`
	Museum         string `json:"museum,omitempty"`
	IIIFBaseURL    string `json:"iiifBaseUrl,omitempty"`
	DirectImageURL string `json:"directImageUrl,omitempty"`
}

// ImageURL resolves the displayable image reference. Records carrying a
// direct URL use it untouched; IIIF sources get the sizing suffix.
func (a Artwork) ImageURL() string {
	if a.DirectImageURL != "" {
		return a.DirectImageURL
	}
	if a.IIIFBaseURL == "" {
		return ""
	}
	return a.IIIFBaseURL + IIIFSizeSuffix
}

// MuseumLabel normalizes a missing museum field to UnknownMuseum so facet
// comparisons always have a concrete value to match against.
func (a Artwork) MuseumLabel() string {
	if strings.TrimSpace(a.Museum) == "" {
		return UnknownMuseum
	}
	return a.Museum
}

// Catalog is a loaded artwork set plus the distinct artist names derived
// from it. Artists are recomputed on every load, never stored.
type Catalog struct {
	Artworks []Artwork
	Artists  []string
}

// FilterAll is the wildcard facet value matching every artwork.
const FilterAll = "All"

// FilterSelection narrows a catalog by museum and artist. Each facet is
// either FilterAll (or empty) or an exact, case-sensitive value; facets
// compose with AND semantics.
type FilterSelection struct {
	Museum string `json:"museum"`
	Artist string `json:"artist"`
}

// Matches reports whether the artwork satisfies both facets.
func (f FilterSelection) Matches(a Artwork) bool {
	if f.Museum != "" && f.Museum != FilterAll && a.MuseumLabel() != f.Museum {
		return false
	}
	if f.Artist != "" && f.Artist != FilterAll && a.Artist != f.Artist {
		return false
	}
	return true
}

// Provider tags where a quiz session draws its pool from.
type Provider string

const (
	// ProviderCatalog draws from the filtered museum catalog.
	ProviderCatalog Provider = "catalog"
	// ProviderCollection draws from the user's saved favorites.
	ProviderCollection Provider = "collection"
)

// Source is the tagged quiz-source union: a provider plus the parameters
// that provider understands. Filter applies to catalog sources only.
type Source struct {
	Provider Provider        `json:"provider"`
	Filter   FilterSelection `json:"filter"`
}

// Question is one quiz turn: a target artwork and its shuffled candidate
// artists. The correct artist appears exactly once among the candidates;
// decoys are distinct from each other and from the correct answer.
type Question struct {
	Artwork       Artwork  `json:"artwork"`
	CorrectArtist string   `json:"-"`
	Candidates    []string `json:"candidates"`
	// InsufficientArtists is set when the whole system holds fewer than
	// four distinct artists and the candidate list degraded below four.
	InsufficientArtists bool `json:"insufficientArtists,omitempty"`
}

// Decoys returns the candidates minus the correct answer, in candidate order.
func (q Question) Decoys() []string {
	decoys := make([]string, 0, len(q.Candidates))
	for _, c := range q.Candidates {
		if c != q.CorrectArtist {
			decoys = append(decoys, c)
		}
	}
	return decoys
}

// HintKind selects which artwork field a hint reveals.
type HintKind string

const (
	HintYear   HintKind = "year"
	HintGenre  HintKind = "genre"
	HintMuseum HintKind = "museum"
)

// AnswerResult summarizes one answer submission.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectArtist string `json:"correctArtist"`
	SessionScore  int    `json:"sessionScore"`
}

// Progress is a snapshot of a session's standing, pushed to the client
// after every answer.
type Progress struct {
	Score           int `json:"score"`
	Answered        int `json:"answered"`
	PoolSize        int `json:"poolSize"`
	LifetimeCorrect int `json:"lifetimeCorrect"`
}

// Profile is the externally persisted user record the engine reads at
// session start and emits deltas against.
type Profile struct {
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	Collection      []Artwork `json:"collection"`
	LifetimeCorrect int       `json:"lifetimeCorrect"`
}
