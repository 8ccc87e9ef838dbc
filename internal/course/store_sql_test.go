package course

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/eduhub/internal/db/dbtest"
	"github.com/mind-engage/eduhub/internal/validate"
)

func sampleCourse() Course {
	return Course{
		Title:       "Intro to Algebra",
		Description: "Linear equations, inequalities and graphs.",
		ImageURL:    "https://example.com/algebra.png",
		Author:      "Dana Ruiz",
		Duration:    "6 weeks",
		Category:    "Mathematics",
		Modules: []Module{{
			Title: "Equations",
			Lessons: []Lesson{
				{Title: "One variable", Content: "x + 1 = 2"},
				{Title: "Checkpoint", QuizID: "quiz-1"},
			},
		}},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newStore(t *testing.T) (*SQLStore, *clock) {
	c := &clock{t: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSQLStore(dbtest.Open(t))
	s.now = c.now
	return s, c
}

func TestCourse_Validate(t *testing.T) {
	require.NoError(t, sampleCourse().Validate())

	c := sampleCourse()
	c.Title = "ab"
	c.Description = "short"
	c.ImageURL = "not a url"
	c.Author = "D"
	c.Duration = ""
	c.Modules[0].Lessons[0].VideoURL = "nope"

	var verr *validate.Error
	require.ErrorAs(t, c.Validate(), &verr)
	for _, f := range []string{"title", "description", "imageUrl", "author", "duration", "modules[0].lessons[0].videoUrl"} {
		assert.True(t, verr.Has(f), f)
	}
	assert.Equal(t, "imageUrl must be a valid URL", verr.Map()["imageUrl"])
	assert.Equal(t, "duration is required", verr.Map()["duration"])
}

func TestCourse_ValidateAssetImage(t *testing.T) {
	c := sampleCourse()
	c.ImageURL = "/assets/courses/abc/cover.png"
	assert.NoError(t, c.Validate())

	c.ImageURL = "/assets/"
	assert.Error(t, c.Validate())
}

func TestCourse_QuizIDs(t *testing.T) {
	c := sampleCourse()
	c.Modules = append(c.Modules, Module{Title: "More", Lessons: []Lesson{{Title: "Again", QuizID: "quiz-1"}, {Title: "New", QuizID: "quiz-2"}}})
	assert.Equal(t, []string{"quiz-1", "quiz-2"}, c.QuizIDs())
}

func TestSQLStore_CourseCRUD(t *testing.T) {
	ctx := context.Background()
	s, clk := newStore(t)

	created, err := s.Create(ctx, sampleCourse())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.Modules[0].ID)
	require.NotEmpty(t, created.Modules[0].Lessons[1].ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	clk.t = clk.t.Add(time.Hour)
	got.Title = "Algebra I"
	got.Modules[0].Lessons = append(got.Modules[0].Lessons, Lesson{Title: "Two variables"})
	updated, err := s.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Algebra I", updated.Title)
	assert.Len(t, updated.Modules[0].Lessons, 3)
	assert.NotEmpty(t, updated.Modules[0].Lessons[2].ID)
	assert.Equal(t, clk.t, updated.UpdatedAt)

	require.NoError(t, s.SetImage(ctx, created.ID, "/assets/courses/x.png"))
	got, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/assets/courses/x.png", got.ImageURL)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
	assert.ErrorIs(t, s.SetImage(ctx, created.ID, "/assets/y.png"), ErrNotFound)
}

func TestSQLStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, clk := newStore(t)
	for _, title := range []string{"First course", "Second course", "Third course"} {
		c := sampleCourse()
		c.Title = title
		_, err := s.Create(ctx, c)
		require.NoError(t, err)
		clk.t = clk.t.Add(time.Minute)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Third course", list[0].Title)
	assert.Equal(t, "First course", list[2].Title)
}

func TestSQLStore_Enrollment(t *testing.T) {
	ctx := context.Background()
	s, clk := newStore(t)
	c, err := s.Create(ctx, sampleCourse())
	require.NoError(t, err)

	e, err := s.Enroll(ctx, c.ID, "student-1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, e.Status)
	first := e.EnrolledAt

	clk.t = clk.t.Add(time.Hour)
	again, err := s.Enroll(ctx, c.ID, "student-1")
	require.NoError(t, err)
	assert.Equal(t, first, again.EnrolledAt)

	ok, err := s.IsEnrolled(ctx, c.ID, "student-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mine, err := s.ListEnrolled(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, c.ID, mine[0].ID)

	others, err := s.ListEnrolled(ctx, "student-2")
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, s.Drop(ctx, c.ID, "student-1"))
	assert.ErrorIs(t, s.Drop(ctx, c.ID, "student-1"), ErrNotFound)
	ok, err = s.IsEnrolled(ctx, c.ID, "student-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Enroll(ctx, c.ID, "student-1")
	require.NoError(t, err)
	ok, _ = s.IsEnrolled(ctx, c.ID, "student-1")
	assert.True(t, ok)
}

func TestSQLStore_EnrollUnknownCourse(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Enroll(context.Background(), "missing", "student-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_DeleteDropsEnrollments(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, err := s.Create(ctx, sampleCourse())
	require.NoError(t, err)
	_, err = s.Enroll(ctx, c.ID, "student-1")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, c.ID))
	mine, err := s.ListEnrolled(ctx, "student-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}
