package quiz

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

type quizRow struct {
	ID            string         `db:"id"`
	CourseID      sql.NullString `db:"course_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	QuestionsJSON string         `db:"questions_json"`
	CreatedAt     int64          `db:"created_at"`
	UpdatedAt     int64          `db:"updated_at"`
}

// toQuiz maps a stored document into the strict Quiz shape.
func (r quizRow) toQuiz() (Quiz, error) {
	q := Quiz{
		ID:          r.ID,
		CourseID:    r.CourseID.String,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   time.Unix(0, r.CreatedAt).UTC(),
	}
	if r.UpdatedAt > 0 {
		q.UpdatedAt = time.Unix(0, r.UpdatedAt).UTC()
	}
	if err := json.Unmarshal([]byte(r.QuestionsJSON), &q.Questions); err != nil {
		return Quiz{}, errors.Wrapf(err, "quiz %s: decode questions", r.ID)
	}
	for i := range q.Questions {
		if q.Questions[i].Type == "" {
			q.Questions[i].Type = TypeMultipleChoice
		}
	}
	return q, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const quizColumns = `id, course_id, title, description, questions_json, created_at, updated_at`

func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	var rows []quizRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC, id`); err != nil {
		return nil, errors.Wrap(err, "list quizzes")
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		q, err := r.toQuiz()
		if err != nil {
			return nil, err
		}
		out = append(out, q.Summarize())
	}
	return out, nil
}

func (s *SQLStore) ListByCourse(ctx context.Context, courseID string) ([]Quiz, error) {
	var rows []quizRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		`SELECT `+quizColumns+` FROM quizzes WHERE course_id=? ORDER BY created_at DESC, id`), courseID); err != nil {
		return nil, errors.Wrapf(err, "list quizzes for course %s", courseID)
	}
	out := make([]Quiz, 0, len(rows))
	for _, r := range rows {
		q, err := r.toQuiz()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Quiz, error) {
	var r quizRow
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`SELECT `+quizColumns+` FROM quizzes WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrQuizNotFound
	}
	if err != nil {
		return Quiz{}, errors.Wrapf(err, "get quiz %s", id)
	}
	return r.toQuiz()
}

func (s *SQLStore) Create(ctx context.Context, q Quiz) (Quiz, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = s.now().UTC()
	q.UpdatedAt = time.Time{}
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return Quiz{}, errors.Wrap(err, "encode questions")
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO quizzes (id, course_id, title, description, questions_json, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,0)`),
		q.ID, nullable(q.CourseID), q.Title, q.Description, string(qj), q.CreatedAt.UnixNano())
	if err != nil {
		return Quiz{}, errors.Wrap(err, "insert quiz")
	}
	return q, nil
}

func (s *SQLStore) Update(ctx context.Context, q Quiz) (Quiz, error) {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return Quiz{}, errors.Wrap(err, "encode questions")
	}
	now := s.now().UTC()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE quizzes SET course_id=?, title=?, description=?, questions_json=?, updated_at=? WHERE id=?`),
		nullable(q.CourseID), q.Title, q.Description, string(qj), now.UnixNano(), q.ID)
	if err != nil {
		return Quiz{}, errors.Wrapf(err, "update quiz %s", q.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Quiz{}, ErrQuizNotFound
	}
	return s.Get(ctx, q.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM quizzes WHERE id=?`), id)
	if err != nil {
		return errors.Wrapf(err, "delete quiz %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM quizzes`); err != nil {
		return 0, errors.Wrap(err, "count quizzes")
	}
	return n, nil
}
