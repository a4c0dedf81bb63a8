package repository

import (
	"context"

	"userapi/internal/model"
)

// UserRepository defines data access for user records using SQL queries only.
// No business logic here — strictly persistence operations. Absent rows
// surface as sql.ErrNoRows; translating that into a domain error is the
// service layer's job.
type UserRepository interface {
	// Create inserts a new user row, including the optional attachment
	// reference. Returns the stored user (may include values set by the DB).
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindAll returns every user, newest first.
	FindAll(ctx context.Context) ([]model.User, error)

	// UpdateName sets a user's name and returns the updated row. The
	// attachment columns are never touched here; attachments are immutable
	// once set.
	UpdateName(ctx context.Context, id, name string) (*model.User, error)

	// Delete removes a user by ID and returns the deleted row, so callers
	// can act on its attachment reference after the delete has committed.
	Delete(ctx context.Context, id string) (*model.User, error)
}
