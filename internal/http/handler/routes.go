package handler

import (
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"cdnupload/internal/auth"
	"cdnupload/internal/service"
)

// RegisterRoutes attaches the upload endpoint to app.
func RegisterRoutes(app *fiber.App, verifier auth.Verifier, svc service.UploadService) {
	app.Get("/upload", Ping())
	app.Post("/upload", UploadFile(verifier, svc))
}

// RegisterHealth attaches the readiness and liveness probes.
func RegisterHealth(app *fiber.App, db *sql.DB) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
}

// RegisterStatic serves the single-page app from dir for every GET/HEAD that
// no earlier route claimed, falling back to index.html for client-side routes.
// It must be registered last. An empty dir registers nothing.
func RegisterStatic(app *fiber.App, dir string) {
	if dir == "" {
		return
	}
	app.Use(filesystem.New(filesystem.Config{
		Root:         http.Dir(dir),
		Index:        "index.html",
		NotFoundFile: "index.html",
	}))
}
