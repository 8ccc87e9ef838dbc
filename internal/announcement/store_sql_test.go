package announcement

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/eduhub/internal/db/dbtest"
	"github.com/mind-engage/eduhub/internal/validate"
)

func TestAnnouncement_Validate(t *testing.T) {
	ok := Announcement{Title: "Welcome", Content: "Term starts on Monday."}
	require.NoError(t, ok.Validate())

	bad := Announcement{Title: "Hi", Content: strings.Repeat("x", 1001)}
	var verr *validate.Error
	require.ErrorAs(t, bad.Validate(), &verr)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("content"))

	empty := Announcement{}
	require.ErrorAs(t, empty.Validate(), &verr)
	assert.Equal(t, "title is required", verr.Map()["title"])
}

func TestAnnouncement_Normalize(t *testing.T) {
	a := Announcement{Title: "  Welcome ", Content: "\tTerm starts on Monday.\n"}
	a.Normalize()
	assert.Equal(t, "Welcome", a.Title)
	assert.Equal(t, "Term starts on Monday.", a.Content)
}

func TestSQLStore_Announcements(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t))
	base := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	var ids []string
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		a, err := s.Create(ctx, Announcement{Title: title, Content: "Some content here."})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Newest", all[0].Title)

	top, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Middle", top[1].Title)

	s.now = func() time.Time { return base.Add(24 * time.Hour) }
	updated, err := s.Update(ctx, Announcement{ID: ids[0], Title: "Oldest, edited", Content: "Edited content here."})
	require.NoError(t, err)
	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, base.Add(24*time.Hour), updated.UpdatedAt)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, s.Delete(ctx, ids[1]))
	_, err = s.Get(ctx, ids[1])
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ids[1]), ErrNotFound)
	_, err = s.Update(ctx, Announcement{ID: ids[1], Title: "Gone", Content: "Gone content."})
	assert.ErrorIs(t, err, ErrNotFound)
}
