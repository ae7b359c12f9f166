package api

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Login exchanges credentials for a bearer token and the practitioner
// profile. Runs on the unauthenticated client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile bound to the client's token. Used to validate a
// restored session before serving pages with it.
func (c *Client) Me(ctx context.Context) (*Practitioner, error) {
	var out Practitioner
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
