package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/offerdeck/backend/api/transport"
	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/pkg/clock"
	"github.com/offerdeck/backend/pkg/httpcontext"
	"github.com/offerdeck/backend/repository"
	offerUC "github.com/offerdeck/backend/usecase/offer"
)

type OfferHandler struct {
	baseHandler
	uc    *offerUC.UseCase
	clock clock.Clock
}

func NewOfferHandler(uc *offerUC.UseCase, clk clock.Clock, adapter *httpcontext.Adapter, logger *zap.Logger) *OfferHandler {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &OfferHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		clock:       clk,
	}
}

// @Summary List open offers, optionally by publisher
// @Tags offers
// @Router /api/v1/offers [get]
func (h *OfferHandler) ListOffers(ctx *fasthttp.RequestCtx) {
	page := repository.Page{
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	publisherID := string(ctx.QueryArgs().Peek("publisher"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var offers []domain.Offer
	var err error
	if publisherID != "" {
		offers, err = h.uc.ListOpenByPublisher(stdCtx, publisherID, page)
	} else {
		offers, err = h.uc.ListOpen(stdCtx, page)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewOfferResponses(offers, h.clock.NowMillis()))
}

// @Summary Get an open offer
// @Tags offers
// @Router /api/v1/offers/{id} [get]
func (h *OfferHandler) GetOffer(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing offer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	offer, err := h.uc.GetOpen(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewOfferResponse(offer, h.clock.NowMillis()))
}

// @Summary Get the publisher of an open offer
// @Tags offers
// @Router /api/v1/offers/{id}/publisher [get]
func (h *OfferHandler) GetPublisher(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing offer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	publisher, err := h.uc.PublisherOf(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewUserResponse(publisher))
}

// @Summary Publish a new offer
// @Tags offers
// @Router /api/v1/offers [post]
func (h *OfferHandler) CreateOffer(ctx *fasthttp.RequestCtx) {
	userID := h.actingUserID(ctx)
	if userID == "" {
		return
	}

	var req transport.OfferCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.respondInvalid(ctx, "invalid price")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, offerUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Currency:    req.Currency,
		TTL:         req.TTL,
		PublisherID: userID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewOfferResponse(created, h.clock.NowMillis()))
}

// @Summary Partially update an open offer
// @Tags offers
// @Router /api/v1/offers/{id} [patch]
func (h *OfferHandler) UpdateOffer(ctx *fasthttp.RequestCtx) {
	userID := h.actingUserID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing offer id")
		return
	}

	var req transport.OfferPatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	patch := domain.OfferPatch{
		Title:       req.Title,
		Description: req.Description,
		Currency:    req.Currency,
		TTL:         req.TTL,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			h.respondInvalid(ctx, "invalid price")
			return
		}
		patch.Price = &price
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Update(stdCtx, id, userID, patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Cancel an open offer
// @Tags offers
// @Router /api/v1/offers/{id} [delete]
func (h *OfferHandler) CancelOffer(ctx *fasthttp.RequestCtx) {
	userID := h.actingUserID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing offer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Cancel(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
