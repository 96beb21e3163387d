package offers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/offermart/internal/dto"
	"github.com/GlebRadaev/offermart/internal/everflow"
	"github.com/GlebRadaev/offermart/pkg/auth"
	"github.com/GlebRadaev/offermart/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Network interface {
	Offers(ctx context.Context) ([]everflow.Offer, error)
	TrackingLink(ctx context.Context, offerID, userID int) (string, error)
}

type OffersHandler struct {
	network Network
}

func New(network Network) *OffersHandler {
	return &OffersHandler{
		network: network,
	}
}

// List godoc
//
//	@Summary		List runnable offers
//	@Description	Returns the affiliate-network offers the user can run. Payouts are withheld; the user sees the in-app reward, not the network rate.
//	@Tags			Offers
//	@Produce		json
//	@Success		200	{array}		dto.OfferDTO
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/offers [get]
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.network.Offers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "offer catalog unavailable")
		return
	}

	resp := make([]dto.OfferDTO, 0, len(offers))
	for _, offer := range offers {
		if offer.Visibility != "public" {
			continue
		}
		resp = append(resp, dto.OfferDTO{
			ID:         offer.NetworkOfferID,
			Name:       offer.Name,
			PreviewURL: offer.PreviewURL,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// TrackingLink godoc
//
//	@Summary		Get a tracking link
//	@Description	Generates the per-user tracking URL for an offer so conversions get attributed back to the user.
//	@Tags			Offers
//	@Produce		json
//	@Param			id	path		int	true	"Offer ID"
//	@Success		200	{object}	dto.TrackingLinkResponseDTO
//	@Failure		400	{object}	map[string]string	"Invalid offer id"
//	@Failure		502	{object}	map[string]string	"Network unavailable"
//	@Security		ApiKeyAuth
//	@Router			/api/offers/{id}/link [get]
func (h *OffersHandler) TrackingLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	offerID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid offer id")
		return
	}

	link, err := h.network.TrackingLink(r.Context(), offerID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "can't generate tracking link")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.TrackingLinkResponseDTO{URL: link})
}
