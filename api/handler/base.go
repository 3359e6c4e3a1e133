package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/offerdeck/backend/api/transport"
	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message, nil))
}

// actingUserID reads the authenticated user id placed by the auth middleware.
func (h baseHandler) actingUserID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id", nil))
	}
	return userID
}

// mapError translates every domain error kind to its protocol response.
// The mapping is total: unknown errors become internal failures.
func mapError(err error) (int, string) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
	switch dErr.Code {
	case domain.ErrCodeUserNotFound, domain.ErrCodeOfferNotFound:
		return http.StatusNotFound, string(dErr.Code)
	case domain.ErrCodeOfferCancelled, domain.ErrCodeOfferExpired:
		return http.StatusGone, string(dErr.Code)
	case domain.ErrCodeUserNotEnabled, domain.ErrCodeUserNotAuthorized:
		return http.StatusForbidden, string(dErr.Code)
	case domain.ErrCodeInvalid, domain.ErrCodeInvalidTTL:
		return http.StatusBadRequest, string(dErr.Code)
	case domain.ErrCodeConflict:
		return http.StatusConflict, string(dErr.Code)
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized, string(dErr.Code)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
