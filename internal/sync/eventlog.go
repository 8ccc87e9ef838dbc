// Package syncx keeps an append-only log of content changes made by admins.
package syncx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const (
	CourseCreated       = "course.created"
	CourseUpdated       = "course.updated"
	CourseDeleted       = "course.deleted"
	CourseImageSet      = "course.image_set"
	QuizCreated         = "quiz.created"
	QuizUpdated         = "quiz.updated"
	QuizDeleted         = "quiz.deleted"
	AnnouncementCreated = "announcement.created"
	AnnouncementUpdated = "announcement.updated"
	AnnouncementDeleted = "announcement.deleted"
)

type Event struct {
	Seq       int64     `json:"seq" db:"seq"`
	SiteID    string    `json:"siteId" db:"site_id"`
	Type      string    `json:"type" db:"typ"`
	Key       string    `json:"key" db:"key"`
	Actor     string    `json:"actor" db:"actor"`
	DataJSON  string    `json:"data" db:"data"`
	CreatedAt time.Time `json:"createdAt" db:"-"`
}

type EventRepo struct {
	db     *sqlx.DB
	siteID string
	now    func() time.Time
}

func NewEventRepo(db *sqlx.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID, now: time.Now}
}

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = r.siteID
	}
	if e.DataJSON == "" {
		e.DataJSON = "{}"
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO event_log (site_id, typ, key, actor, data, created_at)
		 VALUES (?,?,?,?,?,?)`),
		e.SiteID, e.Type, e.Key, e.Actor, e.DataJSON, r.now().UTC().UnixNano())
	return errors.Wrapf(err, "append %s", e.Type)
}

// Record appends an event whose payload is data encoded as JSON.
func (r *EventRepo) Record(ctx context.Context, typ, key, actor string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode event data")
	}
	return r.Append(ctx, Event{Type: typ, Key: key, Actor: actor, DataJSON: string(b)})
}

type eventRow struct {
	Event
	CreatedAtNano int64 `db:"created_at"`
}

// Recent returns up to limit events, newest first.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT seq, site_id, typ, key, actor, data, created_at FROM event_log ORDER BY seq DESC LIMIT ?`), limit); err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		e := row.Event
		e.CreatedAt = time.Unix(0, row.CreatedAtNano).UTC()
		out = append(out, e)
	}
	return out, nil
}
