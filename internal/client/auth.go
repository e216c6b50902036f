// ABOUTME: Authentication call against the clinic backend
// ABOUTME: Defines the login request/response contract

package client

import (
	"context"
	"net/http"
)

// LoginRequest represents credentials for authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login. Employee is present when
// the account is linked to a staff record.
type LoginResponse struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	Employee *Employee `json:"employee,omitempty"`
}

// Login authenticates with POST /login and returns the issued bearer token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
