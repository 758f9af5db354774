package controller

import (
	"matrimony-service/errs"
	"matrimony-service/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var svc *service.Service

// Init wires the controllers to a database. Tests pass an in-memory one.
func Init(db *gorm.DB) {
	svc = service.New(db)
}

func statusFor(err error) int {
	switch errs.Code(err) {
	case errs.CodeInvalidArgument:
		return fiber.StatusBadRequest
	case errs.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case errs.CodeNotFound:
		return fiber.StatusNotFound
	case errs.CodeAlreadyExists:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
		"data":    nil,
	})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    data,
	})
}

// claimsOf reads the JWT the middleware checked and stashed in locals.
func claimsOf(c *fiber.Ctx) (username, kind string) {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	return claims["username"].(string), claims["kind"].(string)
}
