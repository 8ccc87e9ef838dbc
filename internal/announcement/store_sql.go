package announcement

import (
	"context"
	"database/sql"
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

type row struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Content   string `db:"content"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r row) toAnnouncement() Announcement {
	a := Announcement{ID: r.ID, Title: r.Title, Content: r.Content, CreatedAt: time.Unix(0, r.CreatedAt).UTC()}
	if r.UpdatedAt > 0 {
		a.UpdatedAt = time.Unix(0, r.UpdatedAt).UTC()
	}
	return a
}

func (s *SQLStore) List(ctx context.Context, limit int) ([]Announcement, error) {
	q := `SELECT id, title, content, created_at, updated_at FROM announcements ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "list announcements")
	}
	out := make([]Announcement, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toAnnouncement())
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Announcement, error) {
	var r row
	err := s.db.GetContext(ctx, &r, s.db.Rebind(
		`SELECT id, title, content, created_at, updated_at FROM announcements WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Announcement{}, ErrNotFound
	}
	if err != nil {
		return Announcement{}, errors.Wrapf(err, "get announcement %s", id)
	}
	return r.toAnnouncement(), nil
}

func (s *SQLStore) Create(ctx context.Context, a Announcement) (Announcement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now().UTC()
	a.UpdatedAt = time.Time{}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO announcements (id, title, content, created_at, updated_at) VALUES (?,?,?,?,0)`),
		a.ID, a.Title, a.Content, a.CreatedAt.UnixNano())
	if err != nil {
		return Announcement{}, errors.Wrap(err, "insert announcement")
	}
	return a, nil
}

func (s *SQLStore) Update(ctx context.Context, a Announcement) (Announcement, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE announcements SET title=?, content=?, updated_at=? WHERE id=?`),
		a.Title, a.Content, s.now().UTC().UnixNano(), a.ID)
	if err != nil {
		return Announcement{}, errors.Wrapf(err, "update announcement %s", a.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Announcement{}, ErrNotFound
	}
	return s.Get(ctx, a.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM announcements WHERE id=?`), id)
	if err != nil {
		return errors.Wrapf(err, "delete announcement %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM announcements`); err != nil {
		return 0, errors.Wrap(err, "count announcements")
	}
	return n, nil
}
