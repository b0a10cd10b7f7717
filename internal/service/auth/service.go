package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/danny20232023/hris-sub003/internal/domain/auth"
	"github.com/danny20232023/hris-sub003/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	users auth.SysUserRepository
	jwt.Service
}

func NewAuthService(users auth.SysUserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		users:   users,
		Service: jwtService,
	}
}

func (a *AuthServiceImpl) issueTokens(user auth.SysUser) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := a.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := a.GenerateRefreshToken(user.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		ExpiresAt:        expiresAt,
		RefreshToken:     refreshToken,
		Username:         user.Username,
		Role:             user.Role,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	user, err := a.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(user)
}

// Refresh implements auth.AuthService. The presented refresh token is
// rotated: the old one is revoked and a fresh pair is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if a.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	tokens, err := a.issueTokens(user)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	a.RevokeToken(refreshToken)

	return tokens, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	a.RevokeToken(refreshToken)
}
