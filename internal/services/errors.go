package services

import "errors"

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrOptionNotFound      = errors.New("option not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMentionNotFound     = errors.New("mention not found")

	// ErrAccessDenied is returned when a non-creator tries to modify a quiz.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidQuestion wraps question validation failures.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidCode is returned when a join code does not match the quiz.
	ErrInvalidCode = errors.New("invalid join code")
	// ErrAlreadyAnswered is returned on a duplicate submission for the same
	// (participant, question) pair.
	ErrAlreadyAnswered = errors.New("question already answered")
)
