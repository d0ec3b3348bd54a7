package history

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import "context"

// Repository stores finished sessions.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Record, error)
	Stats(ctx context.Context) (Stats, error)
}
