package services

import (
	"errors"
	"fmt"
	"time"

	"ecoloop/internal/async"
	"ecoloop/internal/domain"
	"ecoloop/internal/validate"
)

type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Role     string `form:"role" json:"role" validate:"required,role"`
	Redirect string `form:"redirect" json:"redirect"`
}

type SignupForm struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Company  string `form:"company" json:"company" validate:"required"`
	Username string `form:"username" json:"username"`
	Role     string `form:"role" json:"role" validate:"required,role"`
	Redirect string `form:"redirect" json:"redirect"`
}

// AuthService drives the login/signup prompt. The password is required by the
// form but never checked or stored.
type AuthService struct {
	// Delay stands in for the round trip of a real sign-in call.
	Delay time.Duration
}

func NewAuthService(delay time.Duration) *AuthService { return &AuthService{Delay: delay} }

// Login writes the session and returns a task resolving to the redirect target
// after the simulated latency.
func (a *AuthService) Login(sess *SessionStore, f LoginForm) (*domain.User, *async.Task[string], error) {
	if err := checkForm(f, f.Email); err != nil {
		return nil, nil, err
	}
	u, err := sess.Login(f.Email, "", domain.Role(f.Role))
	if err != nil {
		return nil, nil, err
	}
	return u, a.redirectAfter(f.Redirect), nil
}

func (a *AuthService) Signup(sess *SessionStore, f SignupForm) (*domain.User, *async.Task[string], error) {
	if err := checkForm(f, f.Email); err != nil {
		return nil, nil, err
	}
	u, err := sess.Signup(f.Email, f.Username, f.Company, domain.Role(f.Role))
	if err != nil {
		return nil, nil, err
	}
	return u, a.redirectAfter(f.Redirect), nil
}

func (a *AuthService) redirectAfter(target string) *async.Task[string] {
	to := validate.LocalRedirect(target)
	return async.After(a.Delay, func() (string, error) { return to, nil })
}

func checkForm(form any, email string) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}
	if _, ok := validate.Email(email); !ok {
		return ErrInvalidEmail
	}
	return nil
}

// PromptMessage is the text the prompt shows for a failed submission.
func PromptMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrCompanyRequired), errors.Is(err, ErrEmailRequired):
		return MsgMissingFields
	}
	return "Something went wrong. Please try again."
}
