package leaderboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/dto"
	leaderboardservice "github.com/GlebRadaev/offermart/internal/service/leaderboardservice"
	"github.com/GlebRadaev/offermart/pkg/utils"
)

type Service interface {
	Top(ctx context.Context, kind string) ([]domain.LeaderboardEntry, error)
}

type LeaderboardHandler struct {
	leaderboardService Service
}

func New(leaderboardService Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Top godoc
//
//	@Summary		Get the leaderboard
//	@Description	Returns the top earners for the current weekly or monthly period.
//	@Tags			Leaderboard
//	@Produce		json
//	@Param			period	query		string	false	"weekly or monthly"	default(weekly)
//	@Success		200		{array}		dto.LeaderboardEntryDTO
//	@Failure		400		{object}	map[string]string	"Unknown period"
//	@Failure		500		{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/leaderboard [get]
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "weekly"
	}

	entries, err := h.leaderboardService.Top(r.Context(), period)
	if err != nil {
		if errors.Is(err, leaderboardservice.ErrUnknownPeriod) {
			utils.RespondWithError(w, http.StatusBadRequest, "unknown period")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]dto.LeaderboardEntryDTO, 0, len(entries))
	for i, entry := range entries {
		resp = append(resp, dto.LeaderboardEntryDTO{
			Rank:        i + 1,
			UserID:      entry.UserID,
			EarnedCents: entry.EarnedCents,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
