package handler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"userapi/internal/service"
)

// HealthCheck reports readiness of the record store.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListUsers returns all user records.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(users)
	}
}

// GetUser returns a single user by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		user, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// CreateUser handles multipart/form-data with a required "name" field and an
// optional "file" field holding the attachment.
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.FormValue("name")

		var file *service.FileUpload
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			file = &service.FileUpload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			}
		}

		user, err := svc.Create(c.UserContext(), name, file)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

type updateUserRequest struct {
	Name string `json:"name"`
}

// UpdateUser changes a user's name from a JSON body; the attachment is never
// touched here.
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := svc.UpdateName(c.UserContext(), id, req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// DeleteUser removes a user and returns the deleted record for confirmation
// display.
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		deleted, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(deleted)
	}
}

// DownloadFile streams attachment bytes by blob id. The body is piped from
// object storage; a mid-stream read failure is the transport's problem, since
// headers are already gone by then.
func DownloadFile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, filename, err := svc.Download(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

		if info.Size > 0 {
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}

// PresignFileURL hands out a time-limited URL for downloading the blob
// straight from object storage.
func PresignFileURL(svc service.UserService, expiry time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.PresignDownload(c.UserContext(), c.Params("id"), expiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"url":                u,
			"expires_in_seconds": int(expiry.Seconds()),
		})
	}
}
