// ABOUTME: Authentication endpoints of the inventory API
// ABOUTME: Login exchanges credentials for a token; Validate refreshes the user

package client

import (
	"context"
)

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Post(ctx, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Validate calls POST /api/auth/validate and returns the refreshed user with its role
func (c *Client) Validate(ctx context.Context, token string) (*User, error) {
	body := map[string]string{"token": token}
	var user User
	if err := c.Post(ctx, "/api/auth/validate", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Roles calls GET /api/roles
func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.Get(ctx, "/api/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
