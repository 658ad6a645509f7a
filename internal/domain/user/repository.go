package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)

	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)

	Delete(ctx context.Context, id string) error
}
