package posapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrLoginResponseInvalid = errors.New("Login response invalid")
	ErrNoTokenReturned      = errors.New("No token returned from login")
)

// LoginResult is the data of a successful login.
type LoginResult struct {
	Token string
	// User is the raw user object so callers can keep an exact snapshot.
	User json.RawMessage
}

// Login exchanges credentials for an upstream bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var data json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &data); err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, ErrLoginResponseInvalid
	}

	var payload struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrLoginResponseInvalid
	}
	if payload.Token == "" {
		return nil, ErrNoTokenReturned
	}
	if isNull(payload.User) {
		payload.User = nil
	}
	return &LoginResult{Token: payload.Token, User: payload.User}, nil
}

// Logout tells the POS API to drop the current token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return err
}
