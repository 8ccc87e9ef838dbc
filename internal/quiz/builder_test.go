package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/eduhub/internal/validate"
)

func filledBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder().SetTitle("  Fractions  ").SetDescription(" Basics ").SetCourse("course-9")
	require.NoError(t, b.SetQuestionText(0, "  What is 1/2 + 1/2?  "))
	require.NoError(t, b.SetOption(0, 0, " 1 "))
	require.NoError(t, b.SetOption(0, 1, "2"))
	return b
}

func TestBuilder_NewStartsWithBlankQuestion(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, 1, b.Len())
	q, err := b.question(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, q.Options)
	assert.Equal(t, 0, q.CorrectAnswerIndex)
	assert.Equal(t, TypeMultipleChoice, q.Type)
}

func TestBuilder_BuildTrimsAndAssignsIDs(t *testing.T) {
	q, err := filledBuilder(t).Build()
	require.NoError(t, err)

	assert.Equal(t, "Fractions", q.Title)
	assert.Equal(t, "Basics", q.Description)
	assert.Equal(t, "course-9", q.CourseID)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, "What is 1/2 + 1/2?", q.Questions[0].Text)
	assert.Equal(t, []string{"1", "2"}, q.Questions[0].Options)
	assert.NotEmpty(t, q.Questions[0].ID)
}

func TestBuilder_NoCourseUnlinks(t *testing.T) {
	b := filledBuilder(t).SetCourse(NoCourse)
	q, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, q.CourseID)
}

func TestBuilder_ValidationErrors(t *testing.T) {
	b := NewBuilder().SetTitle("ab")
	require.NoError(t, b.SetQuestionText(0, "tiny"))
	require.NoError(t, b.SetOption(0, 0, "yes"))

	_, err := b.Build()
	require.Error(t, err)
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("questions[0].text"))
	assert.True(t, verr.Has("questions[0].options[1]"))
}

func TestBuilder_RemoveLastQuestion(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.RemoveQuestion(0), ErrLastQuestion)

	i := b.AddQuestion()
	assert.Equal(t, 1, i)
	require.NoError(t, b.RemoveQuestion(0))
	assert.Equal(t, 1, b.Len())
	assert.ErrorIs(t, b.RemoveQuestion(3), ErrOutOfRange)
}

func TestBuilder_RemoveOptionKeepsTwo(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.RemoveOption(0, 0), ErrMinOptions)

	o, err := b.AddOption(0)
	require.NoError(t, err)
	assert.Equal(t, 2, o)
	require.NoError(t, b.RemoveOption(0, 1))
	q, _ := b.question(0)
	assert.Len(t, q.Options, 2)
}

func TestBuilder_RemoveOptionResetsDanglingAnswer(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddOption(0)
	require.NoError(t, err)
	require.NoError(t, b.SetCorrectAnswer(0, 2))

	require.NoError(t, b.RemoveOption(0, 2))
	q, _ := b.question(0)
	assert.Equal(t, 0, q.CorrectAnswerIndex)
}

func TestBuilder_RemoveOptionKeepsValidAnswer(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddOption(0)
	require.NoError(t, err)
	require.NoError(t, b.SetCorrectAnswer(0, 1))

	require.NoError(t, b.RemoveOption(0, 0))
	q, _ := b.question(0)
	assert.Equal(t, 1, q.CorrectAnswerIndex)
}

func TestBuilder_SetCorrectAnswerOutOfRange(t *testing.T) {
	b := NewBuilder()
	assert.ErrorIs(t, b.SetCorrectAnswer(0, 2), ErrOutOfRange)
	assert.ErrorIs(t, b.SetOption(0, -1, "x"), ErrOutOfRange)
	assert.ErrorIs(t, b.SetQuestionType(4, TypeTrueFalse), ErrOutOfRange)
}

func TestBuilderFrom_DoesNotMutateSource(t *testing.T) {
	src := twoQuestionQuiz()
	b := BuilderFrom(src)
	require.NoError(t, b.SetOption(0, 0, "changed"))
	require.NoError(t, b.RemoveQuestion(1))

	assert.Equal(t, "A", src.Questions[0].Options[0])
	assert.Len(t, src.Questions, 2)

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "q1", q.Questions[0].ID)
	assert.Equal(t, "quiz-1", q.ID)
}

func TestQuiz_ValidateCorrectIndex(t *testing.T) {
	q := twoQuestionQuiz()
	q.Questions[1].CorrectAnswerIndex = 3

	err := q.Validate()
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("questions[1].correctAnswerIndex"))
}

func TestQuestion_PublicHidesAnswer(t *testing.T) {
	q := twoQuestionQuiz().Questions[0]
	pub := q.Public()
	assert.Equal(t, q.ID, pub.ID)
	assert.Equal(t, q.Options, pub.Options)
	pub.Options[0] = "x"
	assert.Equal(t, "A", q.Options[0])
}
