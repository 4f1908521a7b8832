package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/collection"
	"art-quiz-service/internal/domain"
	"art-quiz-service/internal/quiz"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz session per websocket connection.
type WSHandler struct {
	service  *quiz.Service
	profiles quiz.ProfileStore
	store    *catalog.Store
	upgrader websocket.Upgrader
}

func NewWSHandler(service *quiz.Service, profiles quiz.ProfileStore, store *catalog.Store) *WSHandler {
	return &WSHandler{
		service:  service,
		profiles: profiles,
		store:    store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Provider domain.Provider        `json:"provider"`
	Filter   domain.FilterSelection `json:"filter"`
}

type answerPayload struct {
	Artist string `json:"artist"`
}

type hintPayload struct {
	Kind domain.HintKind `json:"kind"`
}

type collectionAddPayload struct {
	ArtworkID string `json:"artworkId"`
}

type collectionRemovePayload struct {
	ArtworkID string `json:"artworkId,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// artworkView is the presentation shape of an artwork. Quiz questions omit
// the artist so the payload never carries the answer.
type artworkView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Year     string `json:"year,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Museum   string `json:"museum"`
	ImageURL string `json:"imageUrl"`
}

type questionView struct {
	Artwork             artworkView `json:"artwork"`
	Candidates          []string    `json:"candidates"`
	InsufficientArtists bool        `json:"insufficientArtists,omitempty"`
}

type answerResultView struct {
	Correct       bool            `json:"correct"`
	CorrectArtist string          `json:"correctArtist"`
	SessionScore  int             `json:"sessionScore"`
	Progress      domain.Progress `json:"progress"`
}

type hintView struct {
	Kind  domain.HintKind `json:"kind"`
	Value string          `json:"value"`
}

type optionsView struct {
	Candidates []string `json:"candidates"`
}

type collectionView struct {
	Items     []artworkView `json:"items"`
	ViewIndex int           `json:"viewIndex"`
}

type collectionItemView struct {
	Item      artworkView `json:"item"`
	ViewIndex int         `json:"viewIndex"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// use cases. One connection owns one session and one collection manager.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := fmt.Sprintf("%s-%d", userID, time.Now().UnixNano())
	defer h.service.End(r.Context(), sessionID)

	profile, err := h.profiles.FetchProfile(r.Context(), userID)
	if err != nil {
		log.Printf("fetch profile for %s: %v", userID, err)
		profile = domain.Profile{UserID: userID}
	}
	favorites := collection.NewManager(userID, profile.Collection, h.profiles)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid start payload")
				continue
			}
			source := domain.Source{Provider: payload.Provider, Filter: payload.Filter}
			if source.Provider == "" {
				source.Provider = domain.ProviderCatalog
			}
			question, progress, err := h.service.Start(r.Context(), sessionID, userID, source)
			if err != nil {
				writeError(conn, err.Error())
				continue
			}
			writeJSON(conn, "question", struct {
				questionView
				Progress domain.Progress `json:"progress"`
			}{newQuestionView(question), progress})

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid answer payload")
				continue
			}
			result, progress, err := h.service.Answer(r.Context(), sessionID, payload.Artist)
			if err != nil {
				writeError(conn, err.Error())
				continue
			}
			writeJSON(conn, "answerResult", answerResultView{
				Correct:       result.Correct,
				CorrectArtist: result.CorrectArtist,
				SessionScore:  result.SessionScore,
				Progress:      progress,
			})

		case "next":
			question, progress, err := h.service.Next(r.Context(), sessionID)
			if errors.Is(err, domain.ErrQuizComplete) {
				writeJSON(conn, "complete", progress)
				continue
			}
			if err != nil {
				writeError(conn, err.Error())
				continue
			}
			writeJSON(conn, "question", struct {
				questionView
				Progress domain.Progress `json:"progress"`
			}{newQuestionView(question), progress})

		case "hint":
			var payload hintPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid hint payload")
				continue
			}
			value, err := h.service.Hint(r.Context(), sessionID, payload.Kind)
			if err != nil {
				writeError(conn, err.Error())
				continue
			}
			writeJSON(conn, "hint", hintView{Kind: payload.Kind, Value: value})

		case "fiftyFifty":
			remaining, err := h.service.FiftyFifty(r.Context(), sessionID)
			if err != nil {
				writeError(conn, err.Error())
				continue
			}
			writeJSON(conn, "options", optionsView{Candidates: remaining})

		case "collectionAdd":
			var payload collectionAddPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid collection payload")
				continue
			}
			artwork, ok := h.store.Get(payload.ArtworkID)
			if !ok {
				writeError(conn, "artwork not found")
				continue
			}
			favorites.Add(r.Context(), artwork)
			writeJSON(conn, "collection", newCollectionView(favorites))

		case "collectionRemove":
			var payload collectionRemovePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(conn, "invalid collection payload")
				continue
			}
			if payload.Index != nil {
				favorites.RemoveAt(r.Context(), *payload.Index)
			} else {
				favorites.RemoveByID(r.Context(), payload.ArtworkID)
			}
			writeJSON(conn, "collection", newCollectionView(favorites))

		case "collection":
			writeJSON(conn, "collection", newCollectionView(favorites))

		case "collectionNext":
			artwork, ok := favorites.Next()
			if !ok {
				writeError(conn, "collection is empty")
				continue
			}
			writeJSON(conn, "collectionItem", collectionItemView{
				Item:      newArtworkView(artwork),
				ViewIndex: favorites.ViewIndex(),
			})

		case "collectionPrev":
			artwork, ok := favorites.Prev()
			if !ok {
				writeError(conn, "collection is empty")
				continue
			}
			writeJSON(conn, "collectionItem", collectionItemView{
				Item:      newArtworkView(artwork),
				ViewIndex: favorites.ViewIndex(),
			})

		case "collectionCurrent":
			artwork, ok := favorites.Current()
			if !ok {
				writeError(conn, "collection is empty")
				continue
			}
			writeJSON(conn, "collectionItem", collectionItemView{
				Item:      newArtworkView(artwork),
				ViewIndex: favorites.ViewIndex(),
			})

		default:
			writeError(conn, "unsupported message type")
		}
	}
}

func newQuestionView(q domain.Question) questionView {
	view := newArtworkView(q.Artwork)
	view.Artist = "" // never ship the answer with the question
	return questionView{
		Artwork:             view,
		Candidates:          q.Candidates,
		InsufficientArtists: q.InsufficientArtists,
	}
}

func newArtworkView(a domain.Artwork) artworkView {
	return artworkView{
		ID:       a.ID,
		Title:    a.Title,
		Artist:   a.Artist,
		Year:     a.DisplayDate,
		Medium:   a.Medium,
		Genre:    a.Genre,
		Museum:   a.MuseumLabel(),
		ImageURL: a.ImageURL(),
	}
}

func newCollectionView(m *collection.Manager) collectionView {
	items := m.Items()
	views := make([]artworkView, 0, len(items))
	for _, item := range items {
		views = append(views, newArtworkView(item))
	}
	return collectionView{Items: views, ViewIndex: m.ViewIndex()}
}

func writeJSON[T any](conn *websocket.Conn, msgType string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func writeError(conn *websocket.Conn, message string) {
	writeJSON(conn, "error", errorPayload{Message: message})
}
