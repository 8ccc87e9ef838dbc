package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/eduhub/internal/announcement"
	authmw "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
	"github.com/mind-engage/eduhub/internal/rbac"
	"github.com/mind-engage/eduhub/internal/storage"
	syncx "github.com/mind-engage/eduhub/internal/sync"
	"github.com/mind-engage/eduhub/internal/user"
)

// Deps is everything the API needs; cmd/gateway wires it.
type Deps struct {
	Auth          *authmw.AuthService
	AdminUser     string
	AdminPassHash string

	Users     *user.Service
	UserStore user.Store

	Courses       course.Store
	Quizzes       quiz.Store
	Sessions      *quiz.Manager
	Announcements announcement.Store
	Blobs         storage.BlobStore
	Events        *syncx.EventRepo

	Ping func(ctx context.Context) error // readiness probe, usually the DB
}

// Routes builds the API router. Cross-cutting middleware (request ids,
// logging, CORS) is applied by the caller.
func Routes(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ping != nil {
			if err := d.Ping(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	// Public
	r.Post("/auth/register", RegisterHandler(d.Auth, d.Users))
	r.Post("/auth/login", LoginHandler(d.Auth, d.Users))
	r.Post("/auth/admin/login", authmw.AdminLoginHandler(d.Auth, d.AdminUser, d.AdminPassHash))
	r.Get("/announcements", ListAnnouncementsHandler(d.Announcements))
	r.Get("/courses", ListCoursesHandler(d.Courses))
	r.Get("/courses/{courseID}", GetCourseHandler(d.Courses, d.Quizzes))
	r.Route("/assets", func(ar chi.Router) {
		MountAssets(ar, d.Blobs)
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))
		pr.Use(authmw.VerifyStudent(d.UserStore))

		pr.With(rbac.Require(rbac.PermProfileView)).Get("/me", MeHandler(d.Users))
		pr.With(rbac.Require(rbac.PermPasswordChange)).Post("/me/password", ChangePasswordHandler(d.Users))
		pr.With(rbac.RequireAll(rbac.PermCourseView, rbac.PermCourseEnroll)).Get("/me/courses", MyCoursesHandler(d.Courses))
		pr.With(rbac.Require(rbac.PermCourseEnroll)).Post("/courses/{courseID}/enroll", EnrollHandler(d.Courses))
		pr.With(rbac.Require(rbac.PermCourseEnroll)).Delete("/courses/{courseID}/enroll", DropHandler(d.Courses))

		// Quiz taking
		pr.With(rbac.Require(rbac.PermQuizTake)).Post("/quizzes/{quizID}/sessions", StartSessionHandler(d.Sessions))
		pr.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Use(rbac.Require(rbac.PermQuizTake))
			sr.Get("/", GetSessionHandler(d.Sessions))
			sr.Delete("/", LeaveHandler(d.Sessions))
			sr.Post("/answer", AnswerHandler(d.Sessions))
			sr.Post("/next", NextHandler(d.Sessions))
			sr.Post("/previous", PreviousHandler(d.Sessions))
			sr.Post("/submit", SubmitHandler(d.Sessions))
			sr.Post("/restart", RestartHandler(d.Sessions))
			sr.Post("/dismiss", DismissHandler(d.Sessions))
			sr.Get("/review", ReviewHandler(d.Sessions))
		})

		// Admin
		pr.Route("/admin", func(ar chi.Router) {
			ar.With(rbac.Require(rbac.PermStatsView)).Get("/stats",
				StatsHandler(d.Courses, d.Quizzes, d.Announcements, d.UserStore, d.Sessions))
			ar.With(rbac.Require(rbac.PermStatsView)).Get("/activity", ActivityHandler(d.Events))
			ar.With(rbac.RequireAny(rbac.PermCourseManage, rbac.PermQuizManage)).Get("/courses/{courseID}",
				GetCourseHandler(d.Courses, d.Quizzes))

			ar.Group(func(cr chi.Router) {
				cr.Use(rbac.Require(rbac.PermCourseManage))
				cr.Post("/courses", CreateCourseHandler(d.Courses, d.Events))
				cr.Put("/courses/{courseID}", UpdateCourseHandler(d.Courses, d.Events))
				cr.Delete("/courses/{courseID}", DeleteCourseHandler(d.Courses, d.Events))
				cr.Post("/courses/{courseID}/image", UploadCourseImageHandler(d.Courses, d.Blobs, d.Events))
			})

			ar.Group(func(qr chi.Router) {
				qr.Use(rbac.Require(rbac.PermQuizManage))
				qr.Get("/quizzes", ListQuizzesHandler(d.Quizzes))
				qr.Get("/quizzes/{quizID}", GetQuizHandler(d.Quizzes))
				qr.Post("/quizzes", CreateQuizHandler(d.Quizzes, d.Courses, d.Events))
				qr.Put("/quizzes/{quizID}", UpdateQuizHandler(d.Quizzes, d.Courses, d.Events))
				qr.Delete("/quizzes/{quizID}", DeleteQuizHandler(d.Quizzes, d.Events))
			})

			ar.Group(func(nr chi.Router) {
				nr.Use(rbac.Require(rbac.PermAnnouncementEdit))
				nr.Get("/announcements", ListAnnouncementsHandler(d.Announcements))
				nr.Get("/announcements/{announcementID}", GetAnnouncementHandler(d.Announcements))
				nr.Post("/announcements", CreateAnnouncementHandler(d.Announcements, d.Events))
				nr.Put("/announcements/{announcementID}", UpdateAnnouncementHandler(d.Announcements, d.Events))
				nr.Delete("/announcements/{announcementID}", DeleteAnnouncementHandler(d.Announcements, d.Events))
			})
		})
	})

	return r
}
