package quiz

import "context"

// Store persists quiz definitions. Get returns ErrQuizNotFound for unknown ids.
type Store interface {
	List(ctx context.Context) ([]Summary, error)
	ListByCourse(ctx context.Context, courseID string) ([]Quiz, error)
	Get(ctx context.Context, id string) (Quiz, error)
	Create(ctx context.Context, q Quiz) (Quiz, error)
	Update(ctx context.Context, q Quiz) (Quiz, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Loader is the slice of Store a session registry needs.
type Loader interface {
	Get(ctx context.Context, id string) (Quiz, error)
}
