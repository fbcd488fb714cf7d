package auth

import (
	"context"
	"net/http"

	"github.com/drashti611/gowear-frontend/internal/backend"
)

type Client struct {
	be *backend.Client
}

func NewClient(be *backend.Client) *Client {
	return &Client{be: be}
}

type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Registration struct {
	Name    string `json:"name" binding:"required,min=2,max=80"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,min=7,max=20"`
	Address string `json:"address,omitempty" binding:"omitempty,max=300"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, cred Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.be.Do(ctx, backend.Request{
		Op: "auth.login", Method: http.MethodPost, Path: "/auth/login",
		Body: cred, Out: &out, FailMsg: "Login failed",
	})
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrInvalidToken
	}
	return out.Token, nil
}

// RequestOTP asks the backend to mail a one-time code to email.
func (c *Client) RequestOTP(ctx context.Context, email string) (string, error) {
	return c.message(ctx, "auth.verify_email", "/auth/verify-email", map[string]string{"email": email})
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return c.message(ctx, "auth.verify_otp", "/auth/verify-otp", map[string]string{"email": email, "otp": otp})
}

func (c *Client) Register(ctx context.Context, r Registration) (string, error) {
	return c.message(ctx, "auth.register", "/auth/register", r)
}

// Users lists registered users for the admin console.
func (c *Client) Users(ctx context.Context, token string) ([]string, error) {
	var out []string
	err := c.be.Do(ctx, backend.Request{
		Op: "auth.users", Method: http.MethodGet, Path: "/allusers",
		Token: token, Out: &out, FailMsg: "Error fetching users",
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (c *Client) message(ctx context.Context, op, path string, body any) (string, error) {
	var out messageResponse
	err := c.be.Do(ctx, backend.Request{
		Op: op, Method: http.MethodPost, Path: path,
		Body: body, Out: &out, FailMsg: "Error",
	})
	return out.Message, err
}
