package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/playoff-system/middleware"
	"github.com/Dosada05/playoff-system/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func matchIDFromURL(r *http.Request) (string, error) {
	matchID := chi.URLParam(r, "matchID")
	if matchID == "" {
		return "", errors.New("invalid matchID parameter")
	}
	return matchID, nil
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var round *int
	if raw := r.URL.Query().Get("round"); raw != "" {
		value, convErr := strconv.Atoi(raw)
		if convErr != nil || value < 1 {
			badRequestResponse(w, r, errors.New("round must be a positive integer"))
			return
		}
		round = &value
	}

	matches, err := h.matchService.ListByTournament(r.Context(), tournamentID, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	submissions, err := h.matchService.ListSubmissions(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"submissions": submissions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getIDFromURL(r, "submissionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	match, err := h.matchService.ApproveSubmission(r.Context(), submissionID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getIDFromURL(r, "submissionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err = h.matchService.RejectSubmission(r.Context(), submissionID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "submission rejected"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
