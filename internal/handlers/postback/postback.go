package postback

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/GlebRadaev/offermart/internal/partner"
	postbackservice "github.com/GlebRadaev/offermart/internal/service/postbackservice"
	"github.com/GlebRadaev/offermart/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// Partner integrations require literal "1"/"0" bodies. The HTTP status tells
// the partner whether to retry: only 5xx should be retried.
const (
	bodyAccepted = "1"
	bodyRejected = "0"
)

type Service interface {
	HandlePostback(ctx context.Context, slug string, params url.Values, ip string) (*postbackservice.Result, error)
	HandleNetworkPostback(ctx context.Context, params url.Values, ip string) (*postbackservice.Result, error)
}

type PostbackHandler struct {
	postbackService Service
}

func New(postbackService Service) *PostbackHandler {
	return &PostbackHandler{
		postbackService: postbackService,
	}
}

// Receive godoc
//
//	@Summary		Receive an offerwall postback
//	@Description	Server-to-server conversion callback from an offerwall partner. Responds with a bare "1" (credited or duplicate) or "0" (rejected).
//	@Tags			Postbacks
//	@Produce		plain
//	@Param			partnerSlug	path		string	true	"Partner identifier"
//	@Success		200			{string}	string	"1"
//	@Failure		400			{string}	string	"0"
//	@Failure		403			{string}	string	"0"
//	@Failure		404			{string}	string	"0"
//	@Failure		500			{string}	string	"0"
//	@Router			/postback/{partnerSlug} [get]
func (h *PostbackHandler) Receive(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "partnerSlug")

	_, err := h.postbackService.HandlePostback(r.Context(), slug, r.URL.Query(), clientIP(r))
	respond(w, err)
}

// ReceiveNetwork godoc
//
//	@Summary		Receive an affiliate-network postback
//	@Description	Conversion callback from the Everflow network, authenticated by a shared security token.
//	@Tags			Postbacks
//	@Produce		plain
//	@Success		200	{string}	string	"1"
//	@Failure		400	{string}	string	"0"
//	@Failure		403	{string}	string	"0"
//	@Failure		404	{string}	string	"0"
//	@Failure		500	{string}	string	"0"
//	@Router			/postback/network [get]
func (h *PostbackHandler) ReceiveNetwork(w http.ResponseWriter, r *http.Request) {
	_, err := h.postbackService.HandleNetworkPostback(r.Context(), r.URL.Query(), clientIP(r))
	respond(w, err)
}

func respond(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		utils.RespondPlain(w, http.StatusOK, bodyAccepted)
	case errors.Is(err, partner.ErrMissingParam), errors.Is(err, partner.ErrInvalidPayout):
		utils.RespondPlain(w, http.StatusBadRequest, bodyRejected)
	case errors.Is(err, partner.ErrUnknownPartner),
		errors.Is(err, partner.ErrInvalidSignature),
		errors.Is(err, postbackservice.ErrInvalidToken):
		utils.RespondPlain(w, http.StatusForbidden, bodyRejected)
	case errors.Is(err, postbackservice.ErrUnknownUser):
		utils.RespondPlain(w, http.StatusNotFound, bodyRejected)
	default:
		utils.RespondPlain(w, http.StatusInternalServerError, bodyRejected)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
