package quiz

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Builder edits a quiz the way the admin form does: questions and options
// are added and removed one at a time, and Build validates the result.
type Builder struct {
	q Quiz
}

func blankQuestion() Question {
	return Question{Options: []string{"", ""}, CorrectAnswerIndex: 0, Type: TypeMultipleChoice}
}

// NewBuilder starts with one empty multiple-choice question with two empty options.
func NewBuilder() *Builder {
	return &Builder{q: Quiz{Questions: []Question{blankQuestion()}}}
}

// BuilderFrom edits a copy of an existing quiz.
func BuilderFrom(q Quiz) *Builder {
	b := &Builder{q: q.Clone()}
	if len(b.q.Questions) == 0 {
		b.q.Questions = []Question{blankQuestion()}
	}
	return b
}

func (b *Builder) SetTitle(t string) *Builder       { b.q.Title = t; return b }
func (b *Builder) SetDescription(d string) *Builder { b.q.Description = d; return b }

// SetCourse links the quiz to a course; "" or NoCourse unlinks it.
func (b *Builder) SetCourse(id string) *Builder {
	if id == NoCourse {
		id = ""
	}
	b.q.CourseID = id
	return b
}

func (b *Builder) Len() int { return len(b.q.Questions) }

func (b *Builder) question(i int) (*Question, error) {
	if i < 0 || i >= len(b.q.Questions) {
		return nil, errors.Wrapf(ErrOutOfRange, "question %d", i)
	}
	return &b.q.Questions[i], nil
}

// AddQuestion appends a blank question and returns its index.
func (b *Builder) AddQuestion() int {
	b.q.Questions = append(b.q.Questions, blankQuestion())
	return len(b.q.Questions) - 1
}

func (b *Builder) RemoveQuestion(i int) error {
	if _, err := b.question(i); err != nil {
		return err
	}
	if len(b.q.Questions) <= 1 {
		return ErrLastQuestion
	}
	b.q.Questions = append(b.q.Questions[:i], b.q.Questions[i+1:]...)
	return nil
}

func (b *Builder) SetQuestionText(i int, text string) error {
	q, err := b.question(i)
	if err != nil {
		return err
	}
	q.Text = text
	return nil
}

func (b *Builder) SetQuestionType(i int, t QuestionType) error {
	q, err := b.question(i)
	if err != nil {
		return err
	}
	q.Type = t
	return nil
}

// AddOption appends an empty option to question i and returns its index.
func (b *Builder) AddOption(i int) (int, error) {
	q, err := b.question(i)
	if err != nil {
		return 0, err
	}
	q.Options = append(q.Options, "")
	return len(q.Options) - 1, nil
}

func (b *Builder) SetOption(i, o int, text string) error {
	q, err := b.question(i)
	if err != nil {
		return err
	}
	if o < 0 || o >= len(q.Options) {
		return errors.Wrapf(ErrOutOfRange, "option %d of question %d", o, i)
	}
	q.Options[o] = text
	return nil
}

// RemoveOption drops option o from question i. A question keeps at least two
// options; if the correct answer no longer exists it falls back to the first option.
func (b *Builder) RemoveOption(i, o int) error {
	q, err := b.question(i)
	if err != nil {
		return err
	}
	if o < 0 || o >= len(q.Options) {
		return errors.Wrapf(ErrOutOfRange, "option %d of question %d", o, i)
	}
	if len(q.Options) <= 2 {
		return ErrMinOptions
	}
	q.Options = append(q.Options[:o], q.Options[o+1:]...)
	if q.CorrectAnswerIndex >= len(q.Options) {
		q.CorrectAnswerIndex = 0
	}
	return nil
}

func (b *Builder) SetCorrectAnswer(i, o int) error {
	q, err := b.question(i)
	if err != nil {
		return err
	}
	if o < 0 || o >= len(q.Options) {
		return errors.Wrapf(ErrOutOfRange, "option %d of question %d", o, i)
	}
	q.CorrectAnswerIndex = o
	return nil
}

// Build trims input, fills missing ids and types, and validates.
func (b *Builder) Build() (Quiz, error) {
	out := b.q.Clone()
	out.Title = strings.TrimSpace(out.Title)
	out.Description = strings.TrimSpace(out.Description)
	if out.CourseID == NoCourse {
		out.CourseID = ""
	}
	for i := range out.Questions {
		q := &out.Questions[i]
		q.Text = strings.TrimSpace(q.Text)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.Type == "" {
			q.Type = TypeMultipleChoice
		}
	}
	if err := out.Validate(); err != nil {
		return Quiz{}, err
	}
	return out, nil
}
