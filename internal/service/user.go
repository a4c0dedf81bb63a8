package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"userapi/internal/model"
	"userapi/internal/repository"
	"userapi/internal/storage"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrNotFound        = errors.New("user not found")
	ErrStorageNotReady = errors.New("object storage not ready")
)

// blobKeyPrefix namespaces attachment objects inside the bucket.
const blobKeyPrefix = "attachments/"

// metadataFilenameKey stores the client's original filename on the blob, so
// downloads can reconstruct Content-Disposition from the blob id alone.
const metadataFilenameKey = "original-filename"

// FileUpload carries an optional attachment through Create.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UserService coordinates the user record store and the blob store so that a
// record and its optional attachment are created and destroyed as a unit,
// despite the two stores sharing no transaction.
//
// Create writes the blob first and compensates with a best-effort blob delete
// if the record insert fails. Delete removes the record first and then the
// blob; a failed blob delete is logged and swallowed (an orphaned blob is an
// accepted leak, an un-deletable record is not).
type UserService interface {
	// Create inserts a user with the trimmed name and, if file is non-nil,
	// an attachment whose bytes were written to the blob store first.
	Create(ctx context.Context, name string, file *FileUpload) (*model.User, error)

	// List returns every user.
	List(ctx context.Context) ([]model.User, error)

	// Get returns a single user by its ID.
	Get(ctx context.Context, id string) (*model.User, error)

	// UpdateName changes only the user's name; the attachment is immutable.
	UpdateName(ctx context.Context, id, name string) (*model.User, error)

	// Delete removes the user and cascades to its attachment blob.
	// Returns the deleted record for confirmation display.
	Delete(ctx context.Context, id string) (*model.User, error)

	// Download streams attachment bytes by blob id, along with object info
	// and the original filename.
	Download(ctx context.Context, blobID string) (io.ReadCloser, storage.ObjectInfo, string, error)

	// PresignDownload returns a time-limited URL for fetching the blob
	// directly from object storage.
	PresignDownload(ctx context.Context, blobID string, expiry time.Duration) (string, error)
}

type userService struct {
	blobs *storage.Handle
	repo  repository.UserRepository
	warnf func(format string, args ...any)
}

// NewUserService constructs a new UserService.
func NewUserService(blobs *storage.Handle, repo repository.UserRepository) UserService {
	return &userService{blobs: blobs, repo: repo, warnf: log.Printf}
}

func blobKey(blobID string) string {
	return blobKeyPrefix + blobID
}

func (s *userService) Create(ctx context.Context, name string, file *FileUpload) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// Blob first. The record only ever references a blob that exists.
	var att *model.Attachment
	if file != nil {
		store, ok := s.blobs.Get()
		if !ok {
			return nil, ErrStorageNotReady
		}
		blobID := uuid.New().String() + filepath.Ext(file.Filename)
		_, err := store.Put(ctx, blobKey(blobID), file.Reader, storage.PutObjectOptions{
			Size:        file.Size,
			ContentType: file.ContentType,
			Metadata: map[string]string{
				metadataFilenameKey: file.Filename,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("write blob: %w", err)
		}
		att = &model.Attachment{BlobID: blobID, Filename: file.Filename}
	}

	user := &model.User{
		ID:         uuid.New().String(),
		Name:       name,
		Attachment: att,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, user)
	if err != nil {
		if att != nil {
			s.cleanupBlob(ctx, att.BlobID, "create rollback")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, id, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	user, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the record first. That delete is the point of no return:
// the blob delete afterwards is best-effort and never fails the operation.
func (s *userService) Delete(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if deleted.Attachment != nil {
		s.cleanupBlob(ctx, deleted.Attachment.BlobID, "cascade delete")
	}
	return deleted, nil
}

func (s *userService) Download(ctx context.Context, blobID string) (io.ReadCloser, storage.ObjectInfo, string, error) {
	if blobID == "" {
		return nil, storage.ObjectInfo{}, "", ErrNotFound
	}
	store, ok := s.blobs.Get()
	if !ok {
		return nil, storage.ObjectInfo{}, "", ErrStorageNotReady
	}
	rc, info, err := store.Get(ctx, blobKey(blobID))
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, storage.ObjectInfo{}, "", ErrNotFound
		}
		return nil, storage.ObjectInfo{}, "", fmt.Errorf("read blob: %w", err)
	}
	return rc, info, originalFilename(info, blobID), nil
}

func (s *userService) PresignDownload(ctx context.Context, blobID string, expiry time.Duration) (string, error) {
	if blobID == "" {
		return "", ErrNotFound
	}
	store, ok := s.blobs.Get()
	if !ok {
		return "", ErrStorageNotReady
	}
	u, err := store.PresignGet(ctx, blobKey(blobID), expiry)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("presign blob: %w", err)
	}
	return u, nil
}

// cleanupBlob attempts to delete a blob and logs a warning on any failure.
// Both compensating deletes funnel through here so the leak-acceptance
// policy stays in one place: a cleanup failure must never mask the error
// (or the success) of the operation that triggered it.
func (s *userService) cleanupBlob(ctx context.Context, blobID, reason string) {
	store, ok := s.blobs.Get()
	if !ok {
		s.warnf("orphaned blob %s left behind (%s): object storage not ready", blobID, reason)
		return
	}
	if err := store.Delete(ctx, blobKey(blobID)); err != nil {
		s.warnf("orphaned blob %s left behind (%s): %v", blobID, reason, err)
	}
}

// originalFilename recovers the uploaded filename from blob metadata. S3
// gateways canonicalize user metadata keys on the way back, so both spellings
// are checked.
func originalFilename(info storage.ObjectInfo, blobID string) string {
	if v := info.Metadata[metadataFilenameKey]; v != "" {
		return v
	}
	if v := info.Metadata[textproto.CanonicalMIMEHeaderKey(metadataFilenameKey)]; v != "" {
		return v
	}
	return blobID
}
