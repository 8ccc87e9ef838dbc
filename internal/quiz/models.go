package quiz

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mind-engage/eduhub/internal/validate"
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
)

// NoCourse is the form value meaning "not linked to a course".
const NoCourse = "__NONE__"

type Question struct {
	ID                 string       `json:"id"`
	Text               string       `json:"text" validate:"required,min=5"`
	Options            []string     `json:"options" validate:"min=2,dive,required"`
	CorrectAnswerIndex int          `json:"correctAnswerIndex" validate:"min=0"`
	Type               QuestionType `json:"type" validate:"omitempty,oneof=multiple-choice true-false"`
}

type Quiz struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"courseId,omitempty"`
	Title       string     `json:"title" validate:"required,min=3,max=150"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions" validate:"required,min=1,dive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty"`
}

// Summary is the list view of a quiz.
type Summary struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"courseId,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

const optionIndexTag = "option_index"

func init() {
	validate.RegisterTranslation(optionIndexTag, "{0} must reference one of the options")
	validate.RegisterStructValidation(questionLevel, Question{})
}

func questionLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if len(q.Options) > 0 && q.CorrectAnswerIndex >= len(q.Options) {
		sl.ReportError(q.CorrectAnswerIndex, "correctAnswerIndex", "CorrectAnswerIndex", optionIndexTag, "")
	}
}

// Validate applies the authoring rules (lengths, option count, answer index).
func (q Quiz) Validate() error {
	return validate.Struct(q)
}

// Clone returns a deep copy; sessions and builders never share slices with the source.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		out.Questions[i] = qq.clone()
	}
	return out
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	return out
}

// Summarize builds the list view.
func (q Quiz) Summarize() Summary {
	return Summary{
		ID:            q.ID,
		CourseID:      q.CourseID,
		Title:         q.Title,
		Description:   q.Description,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
	}
}

// PublicQuestion is a question as shown to a student before completion.
type PublicQuestion struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []string     `json:"options"`
	Type    QuestionType `json:"type"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{ID: q.ID, Text: q.Text, Options: append([]string(nil), q.Options...), Type: q.Type}
}
