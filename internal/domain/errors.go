package domain

import "errors"

var (
	// Auth / profile directory
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSurface     = errors.New("unknown login surface")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrRoleMismatch       = errors.New("profile role does not match login surface")
	ErrProfileExists      = errors.New("profile already exists for this user")
	ErrProfileCreation    = errors.New("failed to create profile")

	// Validation
	ErrEmptyTitle          = errors.New("question title must not be empty")
	ErrEmptyContent        = errors.New("content must not be empty")
	ErrInvalidSatisfaction = errors.New("invalid satisfaction rating")

	// Question / answer lifecycle
	ErrQuestionNotFound        = errors.New("question not found")
	ErrAnswerNotFound          = errors.New("answer not found")
	ErrNotSenior               = errors.New("only senior accounts can ask questions")
	ErrNotYouth                = errors.New("only youth accounts can answer questions")
	ErrSelfAnswer              = errors.New("cannot answer your own question")
	ErrNotQuestionOwner        = errors.New("question belongs to another account")
	ErrQuestionAlreadyAnswered = errors.New("question already has an answer")
	ErrAlreadyAccepted         = errors.New("question already has an accepted answer")
)
