package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrProjectExists     = errors.New("project already exists")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidDevice     = errors.New("device must be website or mobile")
	ErrInvalidTheme      = errors.New("unknown theme")
	ErrUserInputTooLong  = errors.New("user input exceeds 2000 characters")
	ErrInvalidConfigJSON = errors.New("invalid JSON response from AI")
	ErrRunInProgress     = errors.New("generation already in progress")
	ErrRunNotFound       = errors.New("generation run not found")
	ErrRunSuperseded     = errors.New("generation run superseded by a newer run")
)
