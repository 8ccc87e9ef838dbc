package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/eduhub/internal/announcement"
	api "github.com/mind-engage/eduhub/internal/api/http"
	auth "github.com/mind-engage/eduhub/internal/auth/middleware"
	"github.com/mind-engage/eduhub/internal/config"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/db"
	"github.com/mind-engage/eduhub/internal/quiz"
	"github.com/mind-engage/eduhub/internal/seed"
	storage "github.com/mind-engage/eduhub/internal/storage"
	syncx "github.com/mind-engage/eduhub/internal/sync"
	"github.com/mind-engage/eduhub/internal/user"
)

const sweepEvery = time.Minute

func main() {
	if err := config.Load(""); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	courses := course.NewSQLStore(dbh)
	quizzes := quiz.NewSQLStore(dbh)
	anns := announcement.NewSQLStore(dbh)
	users := user.NewSQLStore(dbh)

	if cfg.SeedDemo {
		seeded, err := seed.Demo(ctx, seed.Stores{Courses: courses, Quizzes: quizzes, Announcements: anns})
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if seeded {
			log.Printf("seeded demo catalogue")
		}
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	sessions := quiz.NewManager(quizzes, cfg.SessionIdleTTL)
	go sessions.Run(ctx, sweepEvery)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/", api.Routes(api.Deps{
		Auth:          auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL),
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
		Users:         user.NewService(users),
		UserStore:     users,
		Courses:       courses,
		Quizzes:       quizzes,
		Sessions:      sessions,
		Announcements: anns,
		Blobs:         bs,
		Events:        syncx.NewEventRepo(dbh, cfg.SiteID),
		Ping:          dbh.PingContext,
	}))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (mode=%s, db=%s, site=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.SiteID)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http: %v", err)
	}
}
