package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/eduhub/internal/announcement"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/db/dbtest"
	"github.com/mind-engage/eduhub/internal/quiz"
)

func stores(t *testing.T) Stores {
	dbh := dbtest.Open(t)
	return Stores{
		Courses:       course.NewSQLStore(dbh),
		Quizzes:       quiz.NewSQLStore(dbh),
		Announcements: announcement.NewSQLStore(dbh),
	}
}

func TestDemo_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	s := stores(t)

	wrote, err := Demo(ctx, s)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = Demo(ctx, s)
	require.NoError(t, err)
	assert.False(t, wrote)

	n, err := s.Courses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	linked, err := s.Quizzes.ListByCourse(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "quiz-1", linked[0].ID)

	c, err := s.Courses.Get(ctx, "course-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"quiz-2"}, c.QuizIDs())
	for _, c := range demoCourses() {
		assert.NoError(t, c.Validate(), c.ID)
	}
}

func TestDemo_SkipsNonEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	s := stores(t)
	_, err := s.Announcements.Create(ctx, announcement.Announcement{Title: "Existing", Content: "Already here, do not seed."})
	require.NoError(t, err)

	wrote, err := Demo(ctx, s)
	require.NoError(t, err)
	assert.False(t, wrote)
	n, _ := s.Courses.Count(ctx)
	assert.Equal(t, 0, n)
}
