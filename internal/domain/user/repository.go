package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// SetTotalScore overwrites the cached total. Only the reconciliation rebuild calls it.
	SetTotalScore(ctx context.Context, userID string, total int) error
}
