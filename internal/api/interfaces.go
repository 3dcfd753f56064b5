package api

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/neurohabit/backend/internal/oauth"
	"github.com/neurohabit/backend/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type GoogleProviderI interface {
	AuthorizationURL() string
	ExchangeCode(ctx context.Context, code string) (*oauth.TokenData, error)
	UserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error)
}
