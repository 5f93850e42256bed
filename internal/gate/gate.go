// Package gate models the session gate that decides which part of the route
// tree a client may see. Authentication itself is delegated to the external
// identity provider; the gate only reacts to the signals the provider
// reports.
package gate

import (
	"sync"

	"github.com/mossxapp/mossx-backend/pkg/identity"
)

// State is the gate's position in its lifecycle.
type State string

const (
	// StateUninitialized means the provider has not finished loading
	// session state yet. Nothing renders and nothing redirects.
	StateUninitialized State = "uninitialized"
	StateSignedOut     State = "signed_out"
	StateSignedIn      State = "signed_in"
)

// StateFrom folds the provider's loaded/signed-in signals into a gate state.
func StateFrom(loaded, signedIn bool) State {
	if !loaded {
		return StateUninitialized
	}
	if signedIn {
		return StateSignedIn
	}
	return StateSignedOut
}

// Gate is the session state machine. Invalid transitions are ignored rather
// than surfaced; the gate never errors.
type Gate struct {
	mu      sync.Mutex
	state   State
	profile *identity.Profile
}

// New starts a gate in the uninitialized state.
func New() *Gate {
	return &Gate{state: StateUninitialized}
}

// Current returns the state and, when signed in, the provider profile.
func (g *Gate) Current() (State, *identity.Profile) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.profile
}

// ProviderLoaded moves the gate out of uninitialized once the provider has
// finished loading. Repeat calls after initialization are no-ops.
func (g *Gate) ProviderLoaded(signedIn bool, profile *identity.Profile) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateUninitialized {
		return g.state
	}
	if signedIn {
		g.state = StateSignedIn
		g.profile = profile
	} else {
		g.state = StateSignedOut
	}
	return g.state
}

// SignIn transitions signed-out to signed-in. A sign-in while uninitialized
// or already signed in is ignored.
func (g *Gate) SignIn(profile *identity.Profile) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSignedOut {
		return g.state
	}
	g.state = StateSignedIn
	g.profile = profile
	return g.state
}

// SignOut transitions signed-in to signed-out and drops the profile.
func (g *Gate) SignOut() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSignedIn {
		return g.state
	}
	g.state = StateSignedOut
	g.profile = nil
	return g.state
}
