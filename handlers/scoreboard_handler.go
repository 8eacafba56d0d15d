package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/playoff-system/middleware"
	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/scoring"
	"github.com/Dosada05/playoff-system/services"
)

type ScoreboardHandler struct {
	scoreboardService services.ScoreboardService
}

func NewScoreboardHandler(scoreboardService services.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{scoreboardService: scoreboardService}
}

func slotFromInput(raw string) (models.Slot, error) {
	slot := models.Slot(raw)
	if slot != models.SlotTeam1 && slot != models.SlotTeam2 {
		return "", fmt.Errorf("slot must be %q or %q", models.SlotTeam1, models.SlotTeam2)
	}
	return slot, nil
}

func (h *ScoreboardHandler) Start(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scoreboard, err := h.scoreboardService.Start(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"scoreboard": scoreboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scoreboard, err := h.scoreboardService.Get(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"scoreboard": scoreboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) Score(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Slot  string `json:"slot"`
		Delta int    `json:"delta"`
	}
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	slot, err := slotFromInput(input.Slot)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var scoreboard *scoring.Scoreboard
	switch input.Delta {
	case 1:
		scoreboard, err = h.scoreboardService.Increment(r.Context(), matchID, slot)
	case -1:
		scoreboard, err = h.scoreboardService.Decrement(r.Context(), matchID, slot)
	default:
		badRequestResponse(w, r, fmt.Errorf("delta must be 1 or -1, got %d", input.Delta))
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"scoreboard": scoreboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) ResetCurrentSet(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scoreboard, err := h.scoreboardService.ResetCurrentSet(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"scoreboard": scoreboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) SetLocked(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Locked bool `json:"locked"`
	}
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scoreboard, err := h.scoreboardService.SetLocked(r.Context(), matchID, input.Locked)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"scoreboard": scoreboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	submission, err := h.scoreboardService.Submit(r.Context(), matchID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"submission": submission}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreboardHandler) Discard(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err = h.scoreboardService.Discard(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "scoreboard discarded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
