package gate

import (
	"testing"

	"github.com/mossxapp/mossx-backend/pkg/identity"
)

func TestStateFrom(t *testing.T) {
	if got := StateFrom(false, false); got != StateUninitialized {
		t.Fatalf("unloaded provider must be uninitialized, got %s", got)
	}
	if got := StateFrom(false, true); got != StateUninitialized {
		t.Fatalf("signed-in signal before load must not count, got %s", got)
	}
	if got := StateFrom(true, false); got != StateSignedOut {
		t.Fatalf("expected signed_out, got %s", got)
	}
	if got := StateFrom(true, true); got != StateSignedIn {
		t.Fatalf("expected signed_in, got %s", got)
	}
}

func TestGateLifecycle(t *testing.T) {
	g := New()
	if state, _ := g.Current(); state != StateUninitialized {
		t.Fatalf("new gate must start uninitialized, got %s", state)
	}

	profile := &identity.Profile{Subject: "user_1", Name: "Moss"}
	if got := g.ProviderLoaded(true, profile); got != StateSignedIn {
		t.Fatalf("expected signed_in after load, got %s", got)
	}
	if _, p := g.Current(); p == nil || p.Subject != "user_1" {
		t.Fatalf("profile not retained: %+v", p)
	}

	if got := g.SignOut(); got != StateSignedOut {
		t.Fatalf("expected signed_out, got %s", got)
	}
	if _, p := g.Current(); p != nil {
		t.Fatal("profile must be dropped on sign-out")
	}

	if got := g.SignIn(profile); got != StateSignedIn {
		t.Fatalf("expected signed_in, got %s", got)
	}
}

func TestGateIgnoresInvalidTransitions(t *testing.T) {
	g := New()
	if got := g.SignIn(&identity.Profile{Subject: "x"}); got != StateUninitialized {
		t.Fatalf("sign-in before load must be ignored, got %s", got)
	}
	if got := g.SignOut(); got != StateUninitialized {
		t.Fatalf("sign-out before load must be ignored, got %s", got)
	}

	g.ProviderLoaded(false, nil)
	if got := g.ProviderLoaded(true, &identity.Profile{Subject: "x"}); got != StateSignedOut {
		t.Fatalf("repeat provider-loaded must be a no-op, got %s", got)
	}
	if got := g.SignOut(); got != StateSignedOut {
		t.Fatalf("double sign-out must hold state, got %s", got)
	}
}

func TestPolicyRedirects(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		state    State
		route    string
		redirect string
		ok       bool
	}{
		{name: "loading holds position", state: StateUninitialized, route: RouteListing},
		{name: "signed out on listing", state: StateSignedOut, route: RouteListing, redirect: RouteSignIn, ok: true},
		{name: "signed out on cart", state: StateSignedOut, route: RouteCart, redirect: RouteSignIn, ok: true},
		{name: "signed out on root", state: StateSignedOut, route: "/", redirect: RouteSignIn, ok: true},
		{name: "signed out on product detail", state: StateSignedOut, route: "/product/plant-001", redirect: RouteSignIn, ok: true},
		{name: "signed out on sign-in stays", state: StateSignedOut, route: RouteSignIn},
		{name: "signed out on sign-up stays", state: StateSignedOut, route: RouteSignUp},
		{name: "signed in on sign-in", state: StateSignedIn, route: RouteSignIn, redirect: RouteListing, ok: true},
		{name: "signed in on sign-up", state: StateSignedIn, route: RouteSignUp, redirect: RouteListing, ok: true},
		{name: "signed in on listing stays", state: StateSignedIn, route: RouteListing},
		{name: "signed in on profile stays", state: StateSignedIn, route: RouteUserProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, ok := p.Evaluate(tt.state, tt.route)
			if ok != tt.ok || redirect != tt.redirect {
				t.Fatalf("Evaluate(%s, %s) = (%q, %v), want (%q, %v)", tt.state, tt.route, redirect, ok, tt.redirect, tt.ok)
			}
		})
	}
}

func TestPolicyIsIdempotent(t *testing.T) {
	p := DefaultPolicy()
	for _, state := range []State{StateUninitialized, StateSignedOut, StateSignedIn} {
		for _, route := range []string{"/", RouteListing, RouteCart, RouteSignIn, RouteSignUp, "/collection/abc"} {
			redirect, ok := p.Evaluate(state, route)
			if !ok {
				continue
			}
			if again, ok2 := p.Evaluate(state, redirect); ok2 {
				t.Fatalf("redirect target %q for state %s re-redirects to %q", redirect, state, again)
			}
		}
	}
}

func TestPolicyNormalizesRoutes(t *testing.T) {
	p := DefaultPolicy()
	if redirect, ok := p.Evaluate(StateSignedIn, "sign-in/"); !ok || redirect != RouteListing {
		t.Fatalf("route normalization broken: (%q, %v)", redirect, ok)
	}
	if _, ok := p.Evaluate(StateSignedOut, ""); !ok {
		t.Fatal("empty route should be treated as the protected root")
	}
}
