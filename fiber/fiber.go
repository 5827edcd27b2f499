package fiber

import (
	"errors"
	"log"
	"strings"

	gofiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupFiber builds the app with the dashboard views and middleware.
func SetupFiber(views gofiber.Views) *gofiber.App {
	app := gofiber.New(gofiber.Config{
		AppName:           "Student Performance Dashboard",
		Views:             views,
		PassLocalsToViews: true,
		BodyLimit:         32 * 1024 * 1024,
		ErrorHandler:      ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	return app
}

// ErrorHandler answers JSON under /api and a rendered error page elsewhere.
func ErrorHandler(c *gofiber.Ctx, err error) error {
	code := gofiber.StatusInternalServerError
	var fe *gofiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= gofiber.StatusInternalServerError {
		log.Printf("[fiber] %s %s: %v", c.Method(), c.Path(), err)
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(gofiber.Map{
			"success": false,
			"notice":  gofiber.Map{"level": "error", "message": err.Error()},
			"code":    code,
		})
	}

	title := "An Error Occurred"
	switch code {
	case gofiber.StatusNotFound:
		title = "Not Found"
	case gofiber.StatusBadGateway:
		title = "Analytics Backend Unavailable"
	case gofiber.StatusInternalServerError:
		title = "Internal Server Error"
	}

	c.Status(code)
	if renderErr := c.Render("error", gofiber.Map{
		"Title":        title,
		"ErrorCode":    code,
		"ErrorTitle":   title,
		"ErrorMessage": err.Error(),
	}, "layouts/main"); renderErr != nil {
		log.Printf("[fiber] render error page: %v", renderErr)
		return c.Status(code).SendString(err.Error())
	}
	return nil
}
