package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ecoloop/internal/domain"
	applog "ecoloop/internal/log"
)

// Local storage keys shared by the session-scoped stores.
const (
	KeyUser      = "user"
	KeyAuthToken = "authToken"
	KeyWishlist  = "wishlist"
)

var (
	ErrCompanyRequired = errors.New("company is required to sign up")
	ErrEmailRequired   = errors.New("email is required")
)

// Storage is one session's durable key-value namespace. Missing keys report
// ok=false, not an error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// SessionStore holds the identity asserted by the client. It starts in the
// loading state and leaves it on the first successful Hydrate.
type SessionStore struct {
	st      Storage
	loading bool
	user    *domain.User
}

func NewSessionStore(st Storage) *SessionStore {
	return &SessionStore{st: st, loading: true}
}

// Hydrate adopts the persisted user record. A record that does not parse is
// removed and logged; the store then simply has no user. Only a storage
// failure is returned, and it leaves the store loading.
func (s *SessionStore) Hydrate() error {
	if !s.loading {
		return nil
	}
	raw, ok, err := s.st.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}
	if ok {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			applog.Error(nil, "session.hydrate.corrupt", err, nil)
			if rmErr := s.st.Remove(KeyUser); rmErr != nil {
				applog.Error(nil, "session.hydrate.cleanup", rmErr, nil)
			}
		} else {
			s.user = &u
		}
	}
	s.loading = false
	return nil
}

func (s *SessionStore) Loading() bool { return s.loading }

// User returns a copy of the current user, or nil.
func (s *SessionStore) User() *domain.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login asserts an identity. Nothing is verified. An empty username falls back
// to the local part of the email and an empty role to seller.
func (s *SessionStore) Login(email, username string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(username) == "" {
		username = localPart(email)
	}
	if role == "" {
		role = domain.RoleSeller
	}
	return s.persist(domain.User{Email: email, Username: username, Role: role})
}

// Signup is Login with a mandatory company; the username defaults to it.
func (s *SessionStore) Signup(email, username, company string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	company = strings.TrimSpace(company)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if company == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(username) == "" {
		username = company
	}
	if role == "" {
		role = domain.RoleSeller
	}
	return s.persist(domain.User{Email: email, Username: username, Company: company, Role: role})
}

func (s *SessionStore) persist(u domain.User) (*domain.User, error) {
	if _, err := domain.ParseRole(string(u.Role)); err != nil {
		return nil, err
	}
	u.LoggedIn = true
	u.ProfileImage = u.Role.Glyph()
	b, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	if err := s.st.Set(KeyUser, string(b)); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	if err := s.st.Set(KeyAuthToken, uuid.NewString()); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	s.user = &u
	s.loading = false
	return s.User(), nil
}

// Logout removes the user and token records. It is safe without a user.
func (s *SessionStore) Logout() error {
	if err := s.st.Remove(KeyUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.st.Remove(KeyAuthToken); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.user = nil
	return nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
