// Package auth tracks whether a user session is established. All
// transitions run on the reducer's own event loop.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/config"
	"github.com/shajib07/storefront/dispatch"
	"github.com/shajib07/storefront/gateway"
	"github.com/shajib07/storefront/models"
	"github.com/shajib07/storefront/store"
)

type Status string

const (
	// StatusUnknown is the state before the first CheckStatus resolves.
	StatusUnknown         Status = "unknown"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State is the auth snapshot. Err is a substate of Unauthenticated: a
// failed login records its reason without inventing a separate status.
type State struct {
	Status Status
	Err    string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Reducer struct {
	loop     *dispatch.Loop
	notifier dispatch.Notifier[State]
	last     *dispatch.Latest[State]

	gw         gateway.Requester
	tokens     store.TokenStore
	tokenKey   string
	refreshKey string

	state State
}

func New(gw gateway.Requester, tokens store.TokenStore, cfg config.Config) *Reducer {
	initial := State{Status: StatusUnknown}
	return &Reducer{
		loop:       dispatch.NewLoop(),
		last:       dispatch.NewLatest(initial),
		gw:         gw,
		tokens:     tokens,
		tokenKey:   cfg.TokenKey,
		refreshKey: cfg.RefreshTokenKey,
		state:      initial,
	}
}

func (r *Reducer) Subscribe(fn func(State)) func() {
	return r.notifier.Subscribe(fn)
}

func (r *Reducer) Snapshot() State {
	return r.last.Load()
}

func (r *Reducer) Close() {
	r.loop.Close()
}

// CheckStatus restores the session from the token store: a persisted
// bearer token means Authenticated, anything else Unauthenticated.
func (r *Reducer) CheckStatus(ctx context.Context) {
	r.loop.Dispatch(func() {
		token, err := r.tokens.Get(ctx, r.tokenKey)
		if err != nil {
			logger.Warn(ctx, "Token store read failed during status check", zap.Error(err))
			r.transition(State{Status: StatusUnauthenticated})
			return
		}
		if token == "" {
			r.transition(State{Status: StatusUnauthenticated})
			return
		}
		r.transition(State{Status: StatusAuthenticated})
	})
}

// Login exchanges credentials for a token pair. Failure keeps the
// Unauthenticated classification and records the reason.
func (r *Reducer) Login(ctx context.Context, creds Credentials) {
	r.loop.Dispatch(func() {
		raw, err := r.gw.Request(ctx, http.MethodPost, "/auth/login", creds, false)
		if err != nil {
			logger.Warn(ctx, "Login failed", zap.Error(err))
			r.transition(State{Status: StatusUnauthenticated, Err: err.Error()})
			return
		}

		var session models.Session
		if err := json.Unmarshal(raw, &session); err != nil || !session.Established() {
			r.transition(State{Status: StatusUnauthenticated, Err: "malformed login response"})
			return
		}

		if err := r.tokens.Set(ctx, r.tokenKey, session.AccessToken); err != nil {
			r.transition(State{Status: StatusUnauthenticated, Err: "persisting session failed"})
			return
		}
		if session.RefreshToken != "" {
			if err := r.tokens.Set(ctx, r.refreshKey, session.RefreshToken); err != nil {
				logger.Warn(ctx, "Persisting refresh token failed", zap.Error(err))
			}
		}

		logger.Info(ctx, "Login succeeded")
		r.transition(State{Status: StatusAuthenticated})
	})
}

// Logout clears the stored tokens and always lands on Unauthenticated;
// no store or network failure can block it.
func (r *Reducer) Logout(ctx context.Context) {
	r.loop.Dispatch(func() {
		if err := r.tokens.Remove(ctx, r.tokenKey); err != nil {
			logger.Warn(ctx, "Removing access token failed", zap.Error(err))
		}
		if err := r.tokens.Remove(ctx, r.refreshKey); err != nil {
			logger.Warn(ctx, "Removing refresh token failed", zap.Error(err))
		}
		r.transition(State{Status: StatusUnauthenticated})
	})
}

// SessionExpired is wired to the gateway's session-expired hook: a
// failed token refresh anywhere drops the session.
func (r *Reducer) SessionExpired() {
	r.loop.Dispatch(func() {
		r.transition(State{Status: StatusUnauthenticated, Err: "session expired"})
	})
}

func (r *Reducer) transition(next State) {
	r.state = next
	r.last.Store(next)
	r.notifier.Publish(next)
}
