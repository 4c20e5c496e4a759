package httpserver

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

// InitFiberServer builds the fiber app with the server-side view engine for
// the landing page and the static asset mount.
func InitFiberServer(appName, viewsDir, staticDir string) *fiber.App {
	engine := html.New(viewsDir, ".html")

	s := fiber.New(fiber.Config{
		AppName:     appName,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		Views:       engine,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	s.Static("/static", staticDir)

	return s
}
