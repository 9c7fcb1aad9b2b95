package services

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email")
)

// Messages shown by the login/signup prompt.
const (
	MsgMissingFields = "Please fill in all fields and select your role"
	MsgInvalidEmail  = "Please enter a valid email address"
)
