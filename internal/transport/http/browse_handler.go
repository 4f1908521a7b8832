package http

import (
	"encoding/json"
	"log"
	"net/http"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/domain"
)

// BrowseHandler serves the read-only browse API over the loaded catalog:
// filtered, shuffled artwork pages plus the facet value lists.
type BrowseHandler struct {
	store  *catalog.Store
	engine *catalog.Engine
}

func NewBrowseHandler(store *catalog.Store) *BrowseHandler {
	return &BrowseHandler{store: store, engine: catalog.NewEngine()}
}

// Register wires the browse routes onto the mux.
func (h *BrowseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/artworks", h.handleArtworks)
	mux.HandleFunc("/api/artists", h.handleArtists)
	mux.HandleFunc("/api/museums", h.handleMuseums)
}

// handleArtworks returns the filtered working subset in a fresh shuffle.
// An empty result is a valid empty state, never an error.
func (h *BrowseHandler) handleArtworks(w http.ResponseWriter, r *http.Request) {
	sel := domain.FilterSelection{
		Museum: r.URL.Query().Get("museum"),
		Artist: r.URL.Query().Get("artist"),
	}

	matched := h.engine.Apply(sel, h.store.Artworks())
	views := make([]artworkView, 0, len(matched))
	for _, a := range matched {
		views = append(views, newArtworkView(a))
	}
	respondJSON(w, views)
}

func (h *BrowseHandler) handleArtists(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.store.ArtistNames())
}

func (h *BrowseHandler) handleMuseums(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.store.Museums())
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
