package http

import (
	"encoding/json"
	"net/http"

	"github.com/danny20232023/hris-sub003/internal/domain/auth"
	"github.com/danny20232023/hris-sub003/internal/handler/http/response"
	"github.com/danny20232023/hris-sub003/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// refreshTokenFrom reads the refresh token from the cookie, falling back
// to the JSON body for non-browser clients.
func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *authHandlerImpl) setRefreshCookie(w http.ResponseWriter, tokens *auth.TokenResponse) {
	if tokens.RefreshToken == "" {
		return
	}
	w.Header().Add("Set-Cookie", h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshExpiresAt).String())
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, &tokens)
	response.Success(w, tokens)
}

// Refresh implements AuthHandler.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, &tokens)
	response.Success(w, tokens)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(refreshTokenFrom(r))

	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	w.Header().Add("Set-Cookie", expired.String())

	response.SuccessWithMessage(w, "Logged out", nil)
}
