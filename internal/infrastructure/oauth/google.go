// Package oauth implements the Google authorization-code flow used for
// federated login.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"resty.dev/v3"

	"duochat-server/internal/domain/user"
)

const (
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleClient exchanges authorization codes and fetches user profiles.
type GoogleClient struct {
	client       *resty.Client
	clientID     string
	clientSecret string
	redirectURI  string
}

// NewGoogleClient constructs a GoogleClient. redirectURI is the backend
// base URL registered with Google; the callback path is appended here.
func NewGoogleClient(client *resty.Client, clientID, clientSecret, redirectURI string) *GoogleClient {
	return &GoogleClient{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

// AuthCodeURL builds the consent-screen redirect target.
func (g *GoogleClient) AuthCodeURL() string {
	query := url.Values{}
	query.Set("client_id", g.clientID)
	query.Set("redirect_uri", g.callbackURL())
	query.Set("response_type", "code")
	query.Set("scope", "openid email profile")
	return authURL + "?" + query.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Exchange trades an authorization code for an access token.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (string, error) {
	var body tokenResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     g.clientID,
			"client_secret": g.clientSecret,
			"code":          code,
			"redirect_uri":  g.callbackURL(),
			"grant_type":    "authorization_code",
		}).
		SetResult(&body).
		Post(tokenURL)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if resp.IsError() || body.AccessToken == "" {
		return "", errors.New("invalid token")
	}
	return body.AccessToken, nil
}

type userInfoResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Sub     string `json:"sub"`
}

// UserInfo fetches the profile behind an access token.
func (g *GoogleClient) UserInfo(ctx context.Context, accessToken string) (user.Identity, error) {
	var body userInfoResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&body).
		Get(userInfoURL)
	if err != nil {
		return user.Identity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	if resp.IsError() {
		return user.Identity{}, fmt.Errorf("userinfo unexpected status %s", resp.Status())
	}
	if body.Email == "" {
		return user.Identity{}, errors.New("userinfo has no email")
	}

	return user.Identity{
		Email:   body.Email,
		Name:    body.Name,
		Picture: body.Picture,
		Subject: body.Sub,
	}, nil
}

func (g *GoogleClient) callbackURL() string {
	return g.redirectURI + "/auth/google/callback"
}
