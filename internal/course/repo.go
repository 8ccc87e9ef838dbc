package course

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type Store interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (Course, error)
	Create(ctx context.Context, c Course) (Course, error)
	Update(ctx context.Context, c Course) (Course, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, imageURL string) error
	Count(ctx context.Context) (int, error)

	Enroll(ctx context.Context, courseID, studentID string) (Enrollment, error)
	Drop(ctx context.Context, courseID, studentID string) error
	ListEnrolled(ctx context.Context, studentID string) ([]Course, error)
	IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error)
}
