package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	notices []Notice
	targets []string
}

func (r *recorder) Notify(n Notice)        { r.notices = append(r.notices, n) }
func (r *recorder) Navigate(target string) { r.targets = append(r.targets, target) }

func newController(t *testing.T, q Quiz) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewController(newSession(t, q), rec, rec), rec
}

func TestController_NextWithoutAnswerNotifies(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())

	assert.ErrorIs(t, c.Next(), ErrAnswerRequired)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, Notice{
		Title:       "No Answer Selected",
		Description: "Please select an answer before proceeding.",
		Variant:     VariantDestructive,
	}, rec.notices[0])
	assert.Equal(t, 0, c.Session().CurrentIndex())
}

func TestController_NextOnLastQuestionWithoutAnswer(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())
	require.NoError(t, c.SelectAnswer(1))
	require.NoError(t, c.Next())

	assert.ErrorIs(t, c.Next(), ErrAnswerRequired)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, "Please select an answer before proceeding.", rec.notices[0].Description)
	assert.Equal(t, 1, c.Session().CurrentIndex())
	assert.False(t, c.Session().Completed())
}

func TestController_SubmitNotifiesScore(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())
	require.NoError(t, c.SelectAnswer(0))
	require.NoError(t, c.Next())
	require.NoError(t, c.SelectAnswer(2))
	require.NoError(t, c.Next())

	require.Len(t, rec.notices, 1)
	assert.Equal(t, "Quiz Submitted!", rec.notices[0].Title)
	assert.Equal(t, "You scored 1 out of 2.", rec.notices[0].Description)
	assert.Equal(t, VariantDefault, rec.notices[0].Variant)
	assert.Empty(t, rec.targets)
}

func TestController_ExplicitSubmit(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())
	require.NoError(t, c.SelectAnswer(1))

	assert.ErrorIs(t, c.Submit(), ErrAnswerRequired)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, "Please select an answer for the last question.", rec.notices[0].Description)

	require.NoError(t, c.Next())
	require.NoError(t, c.SelectAnswer(2))
	require.NoError(t, c.Submit())
	assert.Equal(t, "You scored 2 out of 2.", rec.notices[1].Description)
}

func TestController_InvalidOptionDoesNotNotify(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())

	assert.ErrorIs(t, c.SelectAnswer(5), ErrInvalidOption)
	assert.Empty(t, rec.notices)
	_, ok := c.Session().Answer(0)
	assert.False(t, ok)
}

func TestController_PreviousAtStart(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())

	assert.ErrorIs(t, c.Previous(), ErrNoPreviousQuestion)
	assert.Empty(t, rec.notices)
}

func TestController_DismissNavigatesOnce(t *testing.T) {
	c, rec := newController(t, twoQuestionQuiz())
	assert.ErrorIs(t, c.Dismiss(), ErrSessionInProgress)

	require.NoError(t, c.SelectAnswer(0))
	require.NoError(t, c.Next())
	require.NoError(t, c.SelectAnswer(0))
	require.NoError(t, c.Next())

	require.NoError(t, c.Dismiss())
	require.NoError(t, c.Dismiss())
	assert.Equal(t, []string{"/student/courses/course-1"}, rec.targets)
}

func TestController_DismissWithoutCourse(t *testing.T) {
	q := twoQuestionQuiz()
	q.CourseID = ""
	c, rec := newController(t, q)
	require.NoError(t, c.SelectAnswer(0))
	require.NoError(t, c.Next())
	require.NoError(t, c.SelectAnswer(0))
	require.NoError(t, c.Next())

	require.NoError(t, c.Dismiss())
	assert.Equal(t, []string{FallbackPath}, rec.targets)
}

func TestController_NilCollaborators(t *testing.T) {
	c := NewController(newSession(t, twoQuestionQuiz()), nil, nil)
	assert.ErrorIs(t, c.Next(), ErrAnswerRequired)
	require.NoError(t, c.SelectAnswer(1))
	require.NoError(t, c.Next())
	require.NoError(t, c.SelectAnswer(2))
	require.NoError(t, c.Next())
	assert.NoError(t, c.Dismiss())
}

func TestReturnPath(t *testing.T) {
	assert.Equal(t, "/student/courses/abc", ReturnPath("abc"))
	assert.Equal(t, "/student/dashboard", ReturnPath(""))
}
