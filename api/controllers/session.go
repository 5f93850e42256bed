package controllers

import (
	"net/http"
	"strings"

	"github.com/mossxapp/mossx-backend/api/responses"
	"github.com/mossxapp/mossx-backend/api/validators"
	"github.com/mossxapp/mossx-backend/internal/gate"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/identity"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

// gateProvider hands out the per-user auth gate.
type gateProvider interface {
	Gate(userID string) *gate.Gate
	Drop(userID string)
}

type sessionResponse struct {
	State   gate.State        `json:"state"`
	Profile *identity.Profile `json:"profile,omitempty"`
}

type navigateRequest struct {
	Route    string `json:"route" validate:"required"`
	Loaded   bool   `json:"loaded"`
	SignedIn bool   `json:"signedIn"`
}

type navigateResponse struct {
	State      gate.State `json:"state"`
	Route      string     `json:"route"`
	Redirect   string     `json:"redirect,omitempty"`
	Redirected bool       `json:"redirected"`
}

// bearerProfile resolves the optional Authorization header. A missing
// header is not an error here; the session endpoints serve signed-out
// clients too.
func bearerProfile(r *http.Request, verifier identity.Verifier) (*identity.Profile, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return nil, nil
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, nil
	}
	if verifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "token verifier unavailable")
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	profile := claims.Profile()
	return &profile, nil
}

// SessionGet reports the caller's gate state: signed in with a verified
// token, signed out without one.
func SessionGet(sessions gateProvider, verifier identity.Verifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if sessions == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable"))
			return
		}

		profile, err := bearerProfile(r, verifier)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if profile == nil {
			responses.WriteSuccess(w, sessionResponse{State: gate.StateSignedOut})
			return
		}

		g := sessions.Gate(profile.Subject)
		g.ProviderLoaded(true, profile)
		g.SignIn(profile)

		state, current := g.Current()
		responses.WriteSuccess(w, sessionResponse{State: state, Profile: current})
	}
}

// SessionNavigate evaluates the redirect policy for a route against the
// caller's gate state. Unauthenticated callers report their provider
// state in the body; a verified token overrides it.
func SessionNavigate(sessions gateProvider, verifier identity.Verifier, policy gate.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload navigateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := bearerProfile(r, verifier)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var state gate.State
		if profile != nil && sessions != nil {
			g := sessions.Gate(profile.Subject)
			g.ProviderLoaded(true, profile)
			g.SignIn(profile)
			state, _ = g.Current()
		} else {
			// An unverified signed-in claim does not count.
			state = gate.StateFrom(payload.Loaded, false)
		}

		redirect, redirected := policy.Evaluate(state, payload.Route)
		responses.WriteSuccess(w, navigateResponse{
			State:      state,
			Route:      payload.Route,
			Redirect:   redirect,
			Redirected: redirected,
		})
	}
}

// SessionEnd signs the caller out and forgets their in-memory state.
func SessionEnd(sessions gateProvider, verifier identity.Verifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if sessions == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable"))
			return
		}

		profile, err := bearerProfile(r, verifier)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if profile == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		sessions.Gate(profile.Subject).SignOut()
		sessions.Drop(profile.Subject)
		responses.WriteSuccess(w, sessionResponse{State: gate.StateSignedOut})
	}
}
