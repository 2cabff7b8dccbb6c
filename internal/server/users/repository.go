package users

import "context"

// Repository is the credential store. Lookups return common.ErrNotFound
// when nothing matches; Insert returns common.ErrDuplicateAccount when the
// email is already taken. Each call is a single-record atomic operation.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
}
