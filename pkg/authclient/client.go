package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobhive/internal/domain"
	"jobhive/internal/usecase"

	"go.uber.org/zap"
)

// Client is an Authenticator backed by a remote account service.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	Backoff  time.Duration
	log      *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Attempts: 3,
		Backoff:  time.Second,
		log:      log,
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountReq struct {
	User     domain.User `json:"user"`
	Password string      `json:"password"`
}

// Authenticate treats 401 as bad credentials.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	body, _ := json.Marshal(loginReq{Email: email, Password: password})
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var u domain.User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, fmt.Errorf("decode login response: %w", err)
		}
		return &u, nil
	case http.StatusUnauthorized, http.StatusNotFound:
		return nil, nil
	default:
		return nil, statusErr("login", resp)
	}
}

func (c *Client) EmailTaken(ctx context.Context, email string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/auth/email-taken?email="+url.QueryEscape(email), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, statusErr("email-taken", resp)
	}
	var out struct {
		Taken bool `json:"taken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode email-taken response: %w", err)
	}
	return out.Taken, nil
}

func (c *Client) CreateAccount(ctx context.Context, u domain.User, password string) error {
	body, _ := json.Marshal(accountReq{User: u, Password: password})
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/accounts", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusConflict:
		return usecase.ErrEmailTaken
	default:
		return statusErr("create account", resp)
	}
}

// do retries transport failures with exponential backoff. HTTP error
// statuses are returned to the caller as-is.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.log.Warn("auth service request failed", zap.String("path", path), zap.Int("attempt", i+1), zap.Error(err))

		if i < attempts-1 {
			backoff := c.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func statusErr(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("auth service %s returned %d: %s", op, resp.StatusCode, strings.TrimSpace(string(b)))
}
