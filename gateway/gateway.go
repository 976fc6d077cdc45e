// Package gateway is the sole component permitted to perform outbound
// network calls. It attaches bearer tokens, classifies failures into the
// application error taxonomy, and performs the single
// refresh-and-retry allowed on an unauthorized response.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/shajib07/storefront/common/errors"
	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/config"
	"github.com/shajib07/storefront/models"
	"github.com/shajib07/storefront/store"
)

// Requester is the surface reducers depend on.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error)
}

type Client struct {
	baseURL    string
	client     *http.Client
	tokens     store.TokenStore
	tokenKey   string
	refreshKey string

	mu        sync.Mutex
	onExpired func()
}

func New(cfg config.Config, tokens store.TokenStore) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
	}

	return &Client{
		baseURL: cfg.APIBaseURL,
		client: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		tokens:     tokens,
		tokenKey:   cfg.TokenKey,
		refreshKey: cfg.RefreshTokenKey,
	}
}

// SetOnSessionExpired registers a hook fired when a refresh attempt
// fails and the session is cleared. The auth reducer uses it to leave
// the Authenticated state.
func (g *Client) SetOnSessionExpired(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExpired = fn
}

// Request issues one HTTP call. On a 401 it refreshes the token pair
// exactly once and retries the original request once with the new
// token; timeouts are surfaced as Timeout errors and never retried.
func (g *Client) Request(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("unencodable request body: %v", err))
		}
	}

	token := ""
	if requiresAuth {
		var err error
		token, err = g.tokens.Get(ctx, g.tokenKey)
		if err != nil {
			return nil, apperrors.Unknown("token store read failed", err)
		}
	}

	status, respBody, err := g.do(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && requiresAuth {
		newToken, refreshErr := g.refresh(ctx)
		if refreshErr != nil {
			g.clearSession(ctx)
			return nil, apperrors.Unauthorized("session expired", refreshErr)
		}

		status, respBody, err = g.do(ctx, method, path, payload, newToken)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			g.clearSession(ctx)
			return nil, apperrors.Unauthorized("request rejected after token refresh", nil)
		}
	}

	if status >= 400 {
		logger.Warn(ctx, "Upstream request failed",
			zap.String("method", method), zap.String("path", path), zap.Int("status", status))
		return nil, apperrors.FromStatus(status, upstreamMessage(respBody, status))
	}

	logger.Debug(ctx, "Upstream request completed",
		zap.String("method", method), zap.String("path", path), zap.Int("status", status))
	return respBody, nil
}

func (g *Client) do(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if len(payload) > 0 {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return 0, nil, apperrors.Unknown("building request failed", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", logger.RequestID(ctx))
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, apperrors.Timeout("request timed out", err)
		}
		return 0, nil, apperrors.Unknown("transport failure", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, apperrors.Timeout("reading response timed out", err)
		}
		return 0, nil, apperrors.Unknown("reading response failed", err)
	}
	return resp.StatusCode, respBody, nil
}

// refresh exchanges the stored refresh token for a new pair and
// persists it. Called at most once per Request.
func (g *Client) refresh(ctx context.Context) (string, error) {
	refreshToken, err := g.tokens.Get(ctx, g.refreshKey)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", errors.New("no refresh token stored")
	}

	payload, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	status, respBody, err := g.do(ctx, http.MethodPost, "/auth/refresh", payload, "")
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("refresh rejected with status %d", status)
	}

	var session models.Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", err
	}
	if !session.Established() {
		return "", errors.New("refresh response missing access token")
	}

	if err := g.tokens.Set(ctx, g.tokenKey, session.AccessToken); err != nil {
		return "", err
	}
	if session.RefreshToken != "" {
		if err := g.tokens.Set(ctx, g.refreshKey, session.RefreshToken); err != nil {
			return "", err
		}
	}

	logger.Info(ctx, "Session token refreshed")
	return session.AccessToken, nil
}

func (g *Client) clearSession(ctx context.Context) {
	_ = g.tokens.Remove(ctx, g.tokenKey)
	_ = g.tokens.Remove(ctx, g.refreshKey)

	g.mu.Lock()
	fn := g.onExpired
	g.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func upstreamMessage(body []byte, status int) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
