// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package oauth implements the Google sign-in used by the back-office.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrMissingClientID     = errors.New("oauth: client id is required")
	ErrMissingClientSecret = errors.New("oauth: client secret is required")
	ErrEmailNotVerified    = errors.New("oauth: email not verified")
	ErrFetchFailed         = errors.New("oauth: userinfo request failed")
)

// UserInfo is the identity returned by Google.
type UserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// Config holds the OAuth client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Google performs the authorization code flow against Google.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogle returns a Google provider for cfg.
func NewGoogle(cfg Config) (*Google, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: googleOAuth.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}, nil
}

// AuthCodeURL returns the consent page URL carrying state.
func (g *Google) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades an authorization code for a token.
func (g *Google) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(g.withClient(ctx), code)
}

// FetchUserInfo retrieves the signed-in identity. Unverified emails are
// rejected with ErrEmailNotVerified.
func (g *Google) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	client := g.config.Client(g.withClient(ctx), token)

	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("status=%d body=%s", resp.StatusCode, body))
	}

	var u struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if !u.VerifiedEmail || u.Email == "" {
		return nil, ErrEmailNotVerified
	}
	return &UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture}, nil
}

func (g *Google) withClient(ctx context.Context) context.Context {
	if g.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	}
	return ctx
}

// NewState returns a random value for the OAuth state parameter.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
