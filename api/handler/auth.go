package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/offerdeck/backend/api/transport"
	"github.com/offerdeck/backend/domain"
	"github.com/offerdeck/backend/pkg/httpcontext"
	authUC "github.com/offerdeck/backend/usecase/auth"
	userUC "github.com/offerdeck/backend/usecase/user"
)

// TokenConfig holds what the handler needs to sign bearer tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

type AuthHandler struct {
	baseHandler
	auth  *authUC.UseCase
	users *userUC.Service
	token TokenConfig
}

func NewAuthHandler(auth *authUC.UseCase, users *userUC.Service, token TokenConfig, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	if token.SessionTTL <= 0 {
		token.SessionTTL = 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		auth:        auth,
		users:       users,
		token:       token,
	}
}

// @Summary Register a new publisher
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.users.Register(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewUserResponse(created))
}

// @Summary Authenticate and issue a bearer token
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.auth.Login(stdCtx, req.Username, req.Password, h.token.SessionTTL)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	signed, err := h.signToken(session.UserID, session.ID, session.ExpiresAt)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		h.respondError(ctx, domain.NewError(domain.ErrCodeInternal, "token signing failed"))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TokenResponse{
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Refresh the current session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))
	if sessionID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.auth.RefreshSession(stdCtx, sessionID, h.token.SessionTTL)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	signed, err := h.signToken(session.UserID, session.ID, session.ExpiresAt)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		h.respondError(ctx, domain.NewError(domain.ErrCodeInternal, "token signing failed"))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TokenResponse{
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))
	if sessionID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing session", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.auth.RevokeSession(stdCtx, sessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Change the current user's password
// @Tags auth
// @Router /api/v1/account/password [put]
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	userID := h.actingUserID(ctx)
	if userID == "" {
		return
	}

	var req transport.PasswordChangeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.users.ChangePassword(stdCtx, userID, req.Password); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *AuthHandler) signToken(userID, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"iss":        h.token.Issuer,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.token.Secret))
}
