// Package oauth holds the Google OAuth boundary. The redirect flow is a
// stub: the URL builder is real, the code exchange returns canned demo data
// until real credentials are wired in.
package oauth

import (
	"context"
	"net/url"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type TokenData struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

type UserInfo struct {
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type GoogleProvider struct {
	cfg GoogleConfig
}

func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	return &GoogleProvider{cfg: cfg}
}

func (p *GoogleProvider) AuthorizationURL() string {
	params := url.Values{}
	params.Set("client_id", p.cfg.ClientID)
	params.Set("redirect_uri", p.cfg.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
}

// ExchangeCode trades the authorization code for tokens. Stubbed.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*TokenData, error) {
	return &TokenData{
		AccessToken: "mock_access_token",
		IDToken:     "mock_id_token",
	}, nil
}

// UserInfo fetches the Google profile for an access token. Stubbed.
func (p *GoogleProvider) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	return &UserInfo{
		GoogleID: "mock_google_id_123",
		Email:    "demo@neurohabit.com",
		Name:     "Demo User",
	}, nil
}
