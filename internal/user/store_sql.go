package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Store interface {
	Create(ctx context.Context, u User) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
	ByID(ctx context.Context, id string) (User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	Count(ctx context.Context) (int, error)
}

type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

type userRow struct {
	User
	CreatedAtNano int64 `db:"created_at"`
}

func (r userRow) toUser() User {
	u := r.User
	u.CreatedAt = time.Unix(0, r.CreatedAtNano).UTC()
	return u
}

const userColumns = `id, email, display_name, password_hash, role, created_at`

func (s *SQLStore) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?)`),
		u.ID, u.Email, u.DisplayName, u.PasswordHash, u.Role, u.CreatedAt.UnixNano())
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, errors.Wrap(err, "insert user")
	}
	return u, nil
}

func (s *SQLStore) get(ctx context.Context, where string, arg any) (User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE `+where+`=?`), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "get user")
	}
	return r.toUser(), nil
}

func (s *SQLStore) ByEmail(ctx context.Context, email string) (User, error) {
	return s.get(ctx, "email", NormalizeEmail(email))
}

func (s *SQLStore) ByID(ctx context.Context, id string) (User, error) {
	return s.get(ctx, "id", id)
}

func (s *SQLStore) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE users SET password_hash=? WHERE id=?`), hash, id)
	if err != nil {
		return errors.Wrapf(err, "update password for %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT COUNT(*) FROM users WHERE role=?`), RoleStudent); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
