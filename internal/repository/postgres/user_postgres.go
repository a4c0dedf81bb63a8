package postgres

import (
	"context"
	"database/sql"

	"userapi/internal/model"
	"userapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, blob_id, attachment_filename, created_at`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u        model.User
		blobID   sql.NullString
		filename sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &blobID, &filename, &u.CreatedAt); err != nil {
		return nil, err
	}
	if blobID.Valid {
		u.Attachment = &model.Attachment{BlobID: blobID.String, Filename: filename.String}
	}
	return &u, nil
}

func attachmentArgs(u *model.User) (blobID, filename any) {
	if u.Attachment == nil {
		return nil, nil
	}
	return u.Attachment.BlobID, u.Attachment.Filename
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, blob_id, attachment_filename, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	blobID, filename := attachmentArgs(user)
	row := r.db.QueryRowContext(ctx, q,
		user.ID,
		user.Name,
		blobID,
		filename,
		user.CreatedAt,
	)
	return scanUser(row)
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns every user ordered newest first.
func (r *UserPostgres) FindAll(ctx context.Context) ([]model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateName updates only the name column. RETURNING makes a missing row
// surface as sql.ErrNoRows from Scan.
func (r *UserPostgres) UpdateName(ctx context.Context, id, name string) (*model.User, error) {
	const q = `
		UPDATE users
		SET name = $2
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, id, name))
}

// Delete removes a user by ID and returns the deleted row.
func (r *UserPostgres) Delete(ctx context.Context, id string) (*model.User, error) {
	const q = `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}
