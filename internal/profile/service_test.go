package profile

import (
	"testing"

	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/identity"
)

type stubSessions struct {
	stores map[string]*Store
}

func (s *stubSessions) Profile(userID string) *Store {
	if s.stores == nil {
		s.stores = make(map[string]*Store)
	}
	if _, ok := s.stores[userID]; !ok {
		s.stores[userID] = NewStore()
	}
	return s.stores[userID]
}

func ptr(v string) *string { return &v }

func TestNewServiceRequiresSessions(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected an error for missing session provider")
	}
}

func TestGetFallsThroughToProviderClaims(t *testing.T) {
	svc, err := NewService(ServiceParams{Sessions: &stubSessions{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	base := identity.Profile{Subject: "user_1", Name: "Moss Green", Email: "moss@example.com", Avatar: "https://img.example.com/a.png"}
	view, err := svc.Get(base)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.DisplayName != "Moss Green" || view.Email != "moss@example.com" || view.Avatar != base.Avatar {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Bio != "" {
		t.Fatalf("fresh profile should have no bio, got %q", view.Bio)
	}
}

func TestUpdateLayersOverrides(t *testing.T) {
	svc, _ := NewService(ServiceParams{Sessions: &stubSessions{}})
	base := identity.Profile{Subject: "user_1", Name: "Moss Green", Email: "moss@example.com"}

	view, err := svc.Update(base, Update{DisplayName: ptr("Fern"), Bio: ptr("Plant collector")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.DisplayName != "Fern" || view.Bio != "Plant collector" {
		t.Fatalf("overrides not applied: %+v", view)
	}
	if view.Email != "moss@example.com" {
		t.Fatalf("email must come from the provider, got %q", view.Email)
	}

	// A later partial update leaves untouched fields alone.
	view, err = svc.Update(base, Update{Bio: ptr("Indoor jungle")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.DisplayName != "Fern" || view.Bio != "Indoor jungle" {
		t.Fatalf("partial update broke earlier overrides: %+v", view)
	}

	// Clearing the display name restores the provider value.
	view, err = svc.Update(base, Update{DisplayName: ptr("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.DisplayName != "Moss Green" {
		t.Fatalf("cleared override must fall back, got %q", view.DisplayName)
	}
}

func TestUpdatesAreScopedPerUser(t *testing.T) {
	svc, _ := NewService(ServiceParams{Sessions: &stubSessions{}})
	alice := identity.Profile{Subject: "user_a", Name: "Alice"}
	bob := identity.Profile{Subject: "user_b", Name: "Bob"}

	if _, err := svc.Update(alice, Update{DisplayName: ptr("Aloe")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	view, err := svc.Get(bob)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.DisplayName != "Bob" {
		t.Fatalf("override leaked across users: %+v", view)
	}
}

func TestRequiresSubject(t *testing.T) {
	svc, _ := NewService(ServiceParams{Sessions: &stubSessions{}})
	_, err := svc.Get(identity.Profile{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	_, err = svc.Update(identity.Profile{}, Update{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}
