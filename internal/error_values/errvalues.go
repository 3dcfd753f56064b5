package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrUserInactive     = errors.New("user is deactivated")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrValidation       = errors.New("validation failed")

	ErrUserHasHabit  = errors.New("user already has habit with such title")
	ErrHabitNotFound = errors.New("habit doesn't exists")
	ErrOwnerNotFound = errors.New("habit owner doesn't exists")
	ErrWrongOwner    = errors.New("habit belongs to different user")
)
