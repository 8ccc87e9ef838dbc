package course

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

type courseRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	ImageURL    string `db:"image_url"`
	Author      string `db:"author"`
	Duration    string `db:"duration"`
	Category    string `db:"category"`
	ModulesJSON string `db:"modules_json"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

func (r courseRow) toCourse() (Course, error) {
	c := Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Author:      r.Author,
		Duration:    r.Duration,
		Category:    r.Category,
		CreatedAt:   time.Unix(0, r.CreatedAt).UTC(),
	}
	if r.UpdatedAt > 0 {
		c.UpdatedAt = time.Unix(0, r.UpdatedAt).UTC()
	}
	if r.ModulesJSON != "" {
		if err := json.Unmarshal([]byte(r.ModulesJSON), &c.Modules); err != nil {
			return Course{}, errors.Wrapf(err, "course %s: decode modules", r.ID)
		}
	}
	return c, nil
}

func toCourses(rows []courseRow) ([]Course, error) {
	out := make([]Course, 0, len(rows))
	for _, r := range rows {
		c, err := r.toCourse()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func encodeModules(m []Module) (string, error) {
	if m == nil {
		m = []Module{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", errors.Wrap(err, "encode modules")
	}
	return string(b), nil
}

const courseColumns = `c.id, c.title, c.description, c.image_url, c.author, c.duration, c.category, c.modules_json, c.created_at, c.updated_at`

func (s *SQLStore) List(ctx context.Context) ([]Course, error) {
	var rows []courseRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+courseColumns+` FROM courses c ORDER BY c.created_at DESC, c.id`); err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return toCourses(rows)
}

func (s *SQLStore) Get(ctx context.Context, id string) (Course, error) {
	var r courseRow
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`SELECT `+courseColumns+` FROM courses c WHERE c.id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	if err != nil {
		return Course{}, errors.Wrapf(err, "get course %s", id)
	}
	return r.toCourse()
}

func (s *SQLStore) Create(ctx context.Context, c Course) (Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.assignIDs()
	c.CreatedAt = s.now().UTC()
	c.UpdatedAt = time.Time{}
	mj, err := encodeModules(c.Modules)
	if err != nil {
		return Course{}, err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO courses (id, title, description, image_url, author, duration, category, modules_json, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,0)`),
		c.ID, c.Title, c.Description, c.ImageURL, c.Author, c.Duration, c.Category, mj, c.CreatedAt.UnixNano())
	if err != nil {
		return Course{}, errors.Wrap(err, "insert course")
	}
	return c, nil
}

func (s *SQLStore) Update(ctx context.Context, c Course) (Course, error) {
	c.assignIDs()
	mj, err := encodeModules(c.Modules)
	if err != nil {
		return Course{}, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE courses SET title=?, description=?, image_url=?, author=?, duration=?, category=?, modules_json=?, updated_at=?
		 WHERE id=?`),
		c.Title, c.Description, c.ImageURL, c.Author, c.Duration, c.Category, mj, s.now().UTC().UnixNano(), c.ID)
	if err != nil {
		return Course{}, errors.Wrapf(err, "update course %s", c.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Course{}, ErrNotFound
	}
	return s.Get(ctx, c.ID)
}

// Delete removes the course and its enrollments. Quizzes linked to it keep
// their course id; the link is weak.
func (s *SQLStore) Delete(ctx context.Context, id string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM course_students WHERE course_id=?`), id); err != nil {
		return errors.Wrapf(err, "delete enrollments for %s", id)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM courses WHERE id=?`), id)
	if err != nil {
		return errors.Wrapf(err, "delete course %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) SetImage(ctx context.Context, id, imageURL string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE courses SET image_url=?, updated_at=? WHERE id=?`),
		imageURL, s.now().UTC().UnixNano(), id)
	if err != nil {
		return errors.Wrapf(err, "set image for %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, errors.Wrap(err, "count courses")
	}
	return n, nil
}

func (s *SQLStore) exists(ctx context.Context, id string) error {
	var one int
	err := s.db.GetContext(ctx, &one, s.db.Rebind(`SELECT 1 FROM courses WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "lookup course %s", id)
}

// Enroll marks the student active in the course. Enrolling again keeps the
// original enrollment time.
func (s *SQLStore) Enroll(ctx context.Context, courseID, studentID string) (Enrollment, error) {
	if err := s.exists(ctx, courseID); err != nil {
		return Enrollment{}, err
	}
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO course_students (course_id, student_id, status, enrolled_at) VALUES (?,?,?,?)
		 ON CONFLICT (course_id, student_id) DO UPDATE SET status=EXCLUDED.status`),
		courseID, studentID, string(StatusActive), now.UnixNano())
	if err != nil {
		return Enrollment{}, errors.Wrap(err, "enroll")
	}
	var at int64
	if err := s.db.GetContext(ctx, &at, s.db.Rebind(
		`SELECT enrolled_at FROM course_students WHERE course_id=? AND student_id=?`), courseID, studentID); err != nil {
		return Enrollment{}, errors.Wrap(err, "read enrollment")
	}
	return Enrollment{CourseID: courseID, StudentID: studentID, Status: StatusActive, EnrolledAt: time.Unix(0, at).UTC()}, nil
}

func (s *SQLStore) Drop(ctx context.Context, courseID, studentID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE course_students SET status=? WHERE course_id=? AND student_id=? AND status=?`),
		string(StatusDropped), courseID, studentID, string(StatusActive))
	if err != nil {
		return errors.Wrap(err, "drop enrollment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListEnrolled(ctx context.Context, studentID string) ([]Course, error) {
	var rows []courseRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		`SELECT `+courseColumns+`
		   FROM courses c
		   JOIN course_students s ON s.course_id=c.id
		  WHERE s.student_id=? AND s.status=?
		  ORDER BY s.enrolled_at DESC, c.id`), studentID, string(StatusActive))
	if err != nil {
		return nil, errors.Wrapf(err, "list courses for %s", studentID)
	}
	return toCourses(rows)
}

func (s *SQLStore) IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		`SELECT COUNT(*) FROM course_students WHERE course_id=? AND student_id=? AND status=?`),
		courseID, studentID, string(StatusActive))
	if err != nil {
		return false, errors.Wrap(err, "check enrollment")
	}
	return n > 0, nil
}
