package account

import "context"

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
}
