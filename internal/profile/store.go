package profile

import "sync"

// Overrides carries the fields a user has edited locally. Empty fields
// fall through to whatever the identity provider reports.
type Overrides struct {
	DisplayName string
	Bio         string
	Avatar      string
}

// Store holds one user's profile edits in memory.
type Store struct {
	mu        sync.Mutex
	overrides Overrides
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Overrides() Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overrides
}

// Apply merges non-nil fields into the stored overrides. A pointer to an
// empty string clears the override so the provider value shows again.
func (s *Store) Apply(update Update) Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.DisplayName != nil {
		s.overrides.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		s.overrides.Bio = *update.Bio
	}
	if update.Avatar != nil {
		s.overrides.Avatar = *update.Avatar
	}
	return s.overrides
}

// Update is a partial edit of the profile. Nil fields are untouched.
type Update struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=80"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Avatar      *string `json:"avatar" validate:"omitempty,url"`
}
