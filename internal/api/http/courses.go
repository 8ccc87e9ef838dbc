package http

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
	"github.com/mind-engage/eduhub/internal/rbac"
	"github.com/mind-engage/eduhub/internal/storage"
	syncx "github.com/mind-engage/eduhub/internal/sync"
)

const maxImageBytes = 5 << 20

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// record appends an audit event. Failures are logged and do not fail the request.
func record(r *http.Request, events *syncx.EventRepo, typ, key string, data any) {
	if events == nil {
		return
	}
	if err := events.Record(r.Context(), typ, key, authmw.SubjectFromContext(r.Context()), data); err != nil {
		log.Printf("api: event %s %s: %v", typ, key, err)
	}
}

type courseDetail struct {
	course.Course
	Quizzes []quiz.Summary `json:"quizzes"`
	// Full quizzes with answers, for callers that may manage quizzes.
	QuizDetails []quiz.Quiz `json:"quizDetails,omitempty"`
}

// courseQuizzes returns the quizzes linked to c by courseId followed by the
// ones its lessons point at. Lesson links to deleted quizzes are skipped.
func courseQuizzes(ctx context.Context, c course.Course, quizzes quiz.Store) ([]quiz.Quiz, error) {
	qs, err := quizzes.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		seen[q.ID] = true
	}
	for _, id := range c.QuizIDs() {
		if seen[id] {
			continue
		}
		q, err := quizzes.Get(ctx, id)
		if errors.Is(err, quiz.ErrQuizNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		seen[id] = true
		qs = append(qs, q)
	}
	return qs, nil
}

// GET /courses/{courseID} and GET /admin/courses/{courseID}
// Answers are included only when the caller may manage quizzes.
func GetCourseHandler(courses course.Store, quizzes quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := courses.Get(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		qs, err := courseQuizzes(r.Context(), c, quizzes)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := courseDetail{Course: c, Quizzes: make([]quiz.Summary, 0, len(qs))}
		for _, q := range qs {
			out.Quizzes = append(out.Quizzes, q.Summarize())
		}
		if rbac.Allowed(r, rbac.PermQuizManage) {
			out.QuizDetails = qs
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /admin/courses
func CreateCourseHandler(courses course.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c course.Course
		if !decodeJSON(w, r, &c) {
			return
		}
		c.ID = ""
		c.Normalize()
		if err := c.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		created, err := courses.Create(r.Context(), c)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.CourseCreated, created.ID, map[string]string{"title": created.Title})
		writeJSON(w, http.StatusCreated, created)
	}
}

// PUT /admin/courses/{courseID}
func UpdateCourseHandler(courses course.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c course.Course
		if !decodeJSON(w, r, &c) {
			return
		}
		c.ID = chi.URLParam(r, "courseID")
		c.Normalize()
		if err := c.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		updated, err := courses.Update(r.Context(), c)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.CourseUpdated, updated.ID, map[string]string{"title": updated.Title})
		writeJSON(w, http.StatusOK, updated)
	}
}

// DELETE /admin/courses/{courseID}
func DeleteCourseHandler(courses course.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		if err := courses.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.CourseDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /admin/courses/{courseID}/image  multipart file=<image>
// Stores the image in the blob store and points the course at it.
func UploadCourseImageHandler(courses course.Store, bs storage.BlobStore, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := courses.Get(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+(64<<10))
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		head := make([]byte, 512)
		n, _ := f.Read(head)
		ext, ok := imageTypes[http.DetectContentType(head[:n])]
		if !ok {
			http.Error(w, "unsupported image type", http.StatusUnsupportedMediaType)
			return
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			http.Error(w, "read upload", http.StatusBadRequest)
			return
		}

		key, err := bs.Put("courses/"+c.ID+"/"+uuid.NewString()+ext, f)
		if err != nil {
			writeError(w, r, err)
			return
		}
		url := bs.URL(key)
		if err := courses.SetImage(r.Context(), c.ID, url); err != nil {
			_ = bs.Delete(key)
			writeError(w, r, err)
			return
		}
		if old := strings.TrimPrefix(c.ImageURL, storage.AssetsPath); old != c.ImageURL {
			if err := bs.Delete(old); err != nil {
				log.Printf("api: remove old image %s: %v", old, err)
			}
		}
		record(r, events, syncx.CourseImageSet, c.ID, map[string]string{"imageUrl": url})
		writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
	}
}
