package quiz

import "github.com/pkg/errors"

var (
	// ErrAnswerRequired is returned when advancing or submitting without an answer for the question.
	ErrAnswerRequired = errors.New("answer required")
	// ErrInvalidOption means the caller passed an option index outside the current question's options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrNoPreviousQuestion is returned by GoBack on the first question.
	ErrNoPreviousQuestion = errors.New("no previous question")
	// ErrSessionCompleted is returned by any mutation after submit.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrSessionInProgress is returned by review/dismiss before submit.
	ErrSessionInProgress = errors.New("session not completed")
	ErrInvalidQuiz       = errors.New("invalid quiz")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrSessionNotFound   = errors.New("session not found")

	ErrLastQuestion = errors.New("a quiz needs at least one question")
	ErrMinOptions   = errors.New("at least two options are required")
	ErrOutOfRange   = errors.New("index out of range")
)
