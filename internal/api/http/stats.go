package http

import (
	"context"
	"net/http"

	"github.com/mind-engage/eduhub/internal/announcement"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
	syncx "github.com/mind-engage/eduhub/internal/sync"
	"github.com/mind-engage/eduhub/internal/user"
)

type Stats struct {
	Courses        int `json:"courses"`
	Quizzes        int `json:"quizzes"`
	Announcements  int `json:"announcements"`
	Students       int `json:"students"`
	ActiveSessions int `json:"activeSessions"`
}

// GET /admin/stats  (dashboard counters)
func StatsHandler(courses course.Store, quizzes quiz.Store, anns announcement.Store, users user.Store, sessions *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s Stats
		counters := []struct {
			dst   *int
			count func(context.Context) (int, error)
		}{
			{&s.Courses, courses.Count},
			{&s.Quizzes, quizzes.Count},
			{&s.Announcements, anns.Count},
			{&s.Students, users.Count},
		}
		for _, c := range counters {
			n, err := c.count(r.Context())
			if err != nil {
				writeError(w, r, err)
				return
			}
			*c.dst = n
		}
		s.ActiveSessions = sessions.Len()
		writeJSON(w, http.StatusOK, s)
	}
}

// GET /admin/activity?limit=N
func ActivityHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := events.Recent(r.Context(), queryInt(r, "limit", 50, 500))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
