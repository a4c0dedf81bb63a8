package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"userapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers are
// thin adapters over the injected service; no business logic lives here.
func RegisterRoutes(app *fiber.App, db *sql.DB, userSvc service.UserService, fileURLExpiry time.Duration) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/users", ListUsers(userSvc))
	app.Post("/users", CreateUser(userSvc))
	app.Get("/users/:id", GetUser(userSvc))
	app.Put("/users/:id", UpdateUser(userSvc))
	app.Delete("/users/:id", DeleteUser(userSvc))

	app.Get("/files/:id", DownloadFile(userSvc))
	app.Get("/files/:id/url", PresignFileURL(userSvc, fileURLExpiry))
}
