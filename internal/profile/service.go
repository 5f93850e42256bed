package profile

import (
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/identity"
)

type profileProvider interface {
	Profile(userID string) *Store
}

// View is the merged profile served to clients: provider claims with
// any local edits layered on top.
type View struct {
	Subject     string `json:"subject"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

type Service interface {
	Get(base identity.Profile) (View, error)
	Update(base identity.Profile, update Update) (View, error)
}

type service struct {
	sessions profileProvider
}

type ServiceParams struct {
	Sessions profileProvider
}

func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile service requires a session provider")
	}
	return &service{sessions: params.Sessions}, nil
}

func (s *service) Get(base identity.Profile) (View, error) {
	if base.Subject == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile requires an authenticated user")
	}
	overrides := s.sessions.Profile(base.Subject).Overrides()
	return merge(base, overrides), nil
}

func (s *service) Update(base identity.Profile, update Update) (View, error) {
	if base.Subject == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile requires an authenticated user")
	}
	overrides := s.sessions.Profile(base.Subject).Apply(update)
	return merge(base, overrides), nil
}

func merge(base identity.Profile, overrides Overrides) View {
	view := View{
		Subject:     base.Subject,
		DisplayName: base.Name,
		Email:       base.Email,
		Avatar:      base.Avatar,
		Bio:         overrides.Bio,
	}
	if overrides.DisplayName != "" {
		view.DisplayName = overrides.DisplayName
	}
	if overrides.Avatar != "" {
		view.Avatar = overrides.Avatar
	}
	return view
}
