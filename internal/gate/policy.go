package gate

import "strings"

// Route names shared with the mobile navigation layer. The path strings are
// an external contract; changing them breaks deployed clients.
const (
	RouteListing     = "/Listing"
	RouteCart        = "/Cart"
	RouteExplore     = "/Explore"
	RouteUserProfile = "/UserProfile"
	RouteEditProfile = "/edit-profile"
	RouteSignIn      = "/sign-in"
	RouteSignUp      = "/sign-up"
)

// Policy decides redirects from gate state and the client's current route.
// Evaluate is pure and idempotent: evaluating the redirect target again
// yields no further redirect.
type Policy struct {
	authRoutes        map[string]struct{}
	protectedPrefixes []string
	signInEntry       string
	listingEntry      string
}

// DefaultPolicy mirrors the storefront route tree: everything is protected
// except the sign-in/sign-up pair.
func DefaultPolicy() Policy {
	return Policy{
		authRoutes: map[string]struct{}{
			RouteSignIn: {},
			RouteSignUp: {},
		},
		protectedPrefixes: []string{
			"/",
		},
		signInEntry:  RouteSignIn,
		listingEntry: RouteListing,
	}
}

// Evaluate returns the route the client must move to, or ok=false when the
// current route is fine for the given state.
func (p Policy) Evaluate(state State, route string) (string, bool) {
	route = normalizeRoute(route)

	switch state {
	case StateUninitialized:
		// provider still loading; hold position
		return "", false
	case StateSignedOut:
		if p.isAuthRoute(route) {
			return "", false
		}
		if p.isProtected(route) {
			return p.signInEntry, true
		}
		return "", false
	case StateSignedIn:
		if p.isAuthRoute(route) {
			return p.listingEntry, true
		}
		return "", false
	default:
		return "", false
	}
}

func (p Policy) isAuthRoute(route string) bool {
	_, ok := p.authRoutes[route]
	return ok
}

func (p Policy) isProtected(route string) bool {
	if p.isAuthRoute(route) {
		return false
	}
	for _, prefix := range p.protectedPrefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

func normalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}
