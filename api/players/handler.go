package players

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	corehistory "github.com/kilianp07/nhltiers/core/history"
	"github.com/kilianp07/nhltiers/core/logger"
	"github.com/kilianp07/nhltiers/core/model"
	"github.com/kilianp07/nhltiers/core/prediction"
	"github.com/kilianp07/nhltiers/core/roster"
)

// History is the part of history.Store served by the API.
type History interface {
	History(playerID model.PlayerID) []model.Prediction
	Accuracy(playerID model.PlayerID) (float64, bool)
	RecordActual(ctx context.Context, playerID model.PlayerID, predictionID string, actual int) error
}

// PlayerView is a roster entry annotated with its tier.
type PlayerView struct {
	model.Player
	Tier      int    `json:"tier"`
	TierLabel string `json:"tier_label"`
}

// TierView groups players under one tier.
type TierView struct {
	Tier    int          `json:"tier"`
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Players []PlayerView `json:"players"`
}

// DetailView is the response of GET /api/players/{id}.
type DetailView struct {
	Player     PlayerView        `json:"player"`
	Prediction *model.Prediction `json:"prediction,omitempty"`
}

// HistoryView is the response of GET /api/players/{id}/history.
type HistoryView struct {
	PlayerID    model.PlayerID     `json:"player_id"`
	Predictions []model.Prediction `json:"predictions"`
	Accuracy    *float64           `json:"accuracy,omitempty"`
}

// Handler serves the player endpoints. The predictor and history are optional.
type Handler struct {
	dir     *roster.Directory
	pred    prediction.Predictor
	history History
	log     logger.Logger
}

// NewHandler returns a Handler. pred and hist may be nil.
func NewHandler(dir *roster.Directory, pred prediction.Predictor, hist History, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{dir: dir, pred: pred, history: hist, log: log}
}

// NewRouter registers every route on a new gorilla/mux router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.recoverMiddleware)
	r.Use(h.logMiddleware)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Routes stay on the root router so a method mismatch answers 405.
	r.HandleFunc("/api/players", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/players/tiers", h.Tiers).Methods(http.MethodGet)
	r.HandleFunc("/api/players/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/players/{id}/history", h.History).Methods(http.MethodGet)
	r.HandleFunc("/api/players/{id}/predictions/{predictionID}/actual", h.RecordActual).Methods(http.MethodPost)
	return r
}

// Health reports liveness and roster size.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "players": h.dir.Len()})
}

// List returns players matching the optional q query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	players := h.dir.Search(r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, views(players))
}

// Tiers returns the roster grouped by tier, best tier first. Empty tiers are omitted.
func (h *Handler) Tiers(w http.ResponseWriter, _ *http.Request) {
	groups := h.dir.Tiers()
	out := make([]TierView, 0, len(groups))
	for _, t := range roster.Tiers {
		ps, ok := groups[t]
		if !ok {
			continue
		}
		out = append(out, TierView{Tier: int(t), Name: t.String(), Label: t.Label(), Players: views(ps)})
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns a player and, when a predictor is configured, a fresh prediction.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.player(w, r)
	if !ok {
		return
	}
	out := DetailView{Player: view(p)}
	if h.pred != nil {
		pred := h.pred.PredictNextSeason(r.Context(), p)
		out.Prediction = &pred
	}
	respondJSON(w, http.StatusOK, out)
}

// History returns the player's past predictions and their mean accuracy.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	p, ok := h.player(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "prediction history disabled", nil)
		return
	}
	out := HistoryView{PlayerID: p.ID, Predictions: h.history.History(p.ID)}
	if acc, ok := h.history.Accuracy(p.ID); ok {
		out.Accuracy = &acc
	}
	respondJSON(w, http.StatusOK, out)
}

type actualRequest struct {
	ActualPoints *int `json:"actual_points"`
}

// RecordActual stores the points actually scored for a past prediction.
func (h *Handler) RecordActual(w http.ResponseWriter, r *http.Request) {
	p, ok := h.player(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "prediction history disabled", nil)
		return
	}
	var req actualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body", err)
		return
	}
	if req.ActualPoints == nil {
		respondError(w, http.StatusBadRequest, "actual_points is required", nil)
		return
	}
	predID := mux.Vars(r)["predictionID"]
	err := h.history.RecordActual(r.Context(), p.ID, predID, *req.ActualPoints)
	switch {
	case errors.Is(err, corehistory.ErrNotFound):
		respondError(w, http.StatusNotFound, "prediction not found", err)
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, "cannot record actual points", err)
		return
	}
	h.log.Infof("recorded %d actual points for prediction %s of player %s", *req.ActualPoints, predID, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) player(w http.ResponseWriter, r *http.Request) (model.Player, bool) {
	id := model.PlayerID(mux.Vars(r)["id"])
	p, ok := h.dir.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "player not found", nil)
	}
	return p, ok
}

func view(p model.Player) PlayerView {
	t := roster.TierFor(p.CurrentSeasonPoints)
	return PlayerView{Player: p, Tier: int(t), TierLabel: t.Label()}
}

func views(players []model.Player) []PlayerView {
	out := make([]PlayerView, len(players))
	for i, p := range players {
		out[i] = view(p)
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message, "status": status}
	if err != nil {
		body["details"] = err.Error()
	}
	respondJSON(w, status, body)
}
