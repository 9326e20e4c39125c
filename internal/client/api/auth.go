package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an access token. The server expects an
// OAuth2 password form with the email as username.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("login response has no access token")
	}
	return resp.AccessToken, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. It does not log in.
func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", nil,
		registerRequest{Email: email, Password: password}, nil)
}
