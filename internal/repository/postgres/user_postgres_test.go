package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"userapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userRows = []string{"id", "name", "blob_id", "attachment_filename", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("without attachment", func(t *testing.T) {
		user := &model.User{ID: "user-uuid", Name: "Ana", CreatedAt: now}

		rows := sqlmock.NewRows(userRows).
			AddRow(user.ID, user.Name, nil, nil, user.CreatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Name, nil, nil, user.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, user)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, result.ID)
		assert.Nil(t, result.Attachment)
	})

	t.Run("with attachment", func(t *testing.T) {
		user := &model.User{
			ID:         "user-uuid-2",
			Name:       "Bob",
			Attachment: &model.Attachment{BlobID: "blob-uuid.pdf", Filename: "report.pdf"},
			CreatedAt:  now,
		}

		rows := sqlmock.NewRows(userRows).
			AddRow(user.ID, user.Name, user.Attachment.BlobID, user.Attachment.Filename, user.CreatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Attachment.BlobID, user.Attachment.Filename, user.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, user)

		assert.NoError(t, err)
		if assert.NotNil(t, result.Attachment) {
			assert.Equal(t, "blob-uuid.pdf", result.Attachment.BlobID)
			assert.Equal(t, "report.pdf", result.Attachment.Filename)
		}
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userRows).
			AddRow("test-id", "Ana", nil, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		user, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.Equal(t, "test-id", user.ID)
		assert.Nil(t, user.Attachment)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, user)
	})
}

func TestUserPostgres_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("mixed attachments", func(t *testing.T) {
		rows := sqlmock.NewRows(userRows).
			AddRow("id-1", "Ana", nil, nil, time.Now()).
			AddRow("id-2", "Bob", "blob-1.pdf", "report.pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
			WillReturnRows(rows)

		users, err := repo.FindAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Nil(t, users[0].Attachment)
		assert.NotNil(t, users[1].Attachment)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
			WillReturnRows(sqlmock.NewRows(userRows))

		users, err := repo.FindAll(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)
	})
}

func TestUserPostgres_UpdateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		rows := sqlmock.NewRows(userRows).
			AddRow("test-id", "Ana Maria", "blob-1.pdf", "report.pdf", time.Now())

		mock.ExpectQuery("UPDATE users").
			WithArgs("test-id", "Ana Maria").
			WillReturnRows(rows)

		user, err := repo.UpdateName(ctx, "test-id", "Ana Maria")

		assert.NoError(t, err)
		assert.Equal(t, "Ana Maria", user.Name)
		// attachment reference rides along untouched
		assert.NotNil(t, user.Attachment)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("missing", "Ana Maria").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.UpdateName(ctx, "missing", "Ana Maria")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, user)
	})
}

func TestUserPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("returns deleted row", func(t *testing.T) {
		rows := sqlmock.NewRows(userRows).
			AddRow("test-id", "Bob", "blob-1.pdf", "report.pdf", time.Now())

		mock.ExpectQuery("DELETE FROM users").
			WithArgs("test-id").
			WillReturnRows(rows)

		user, err := repo.Delete(ctx, "test-id")

		assert.NoError(t, err)
		assert.Equal(t, "test-id", user.ID)
		if assert.NotNil(t, user.Attachment) {
			assert.Equal(t, "blob-1.pdf", user.Attachment.BlobID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM users").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.Delete(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
