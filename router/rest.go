package router

import (
	"matrimony-service/config"
	"matrimony-service/controller"
	"matrimony-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App) {
	// Uploaded photos/videos are plain files under a per-username directory.
	dir := config.Config("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	app.Static("/uploads", dir)

	api := app.Group("/v1", logger.New())

	// Auth
	auth := api.Group("/auth")
	auth.Post("/token/renew", controller.AuthTokenRenew)
	auth.Post("/signout", middleware.JWT(), controller.AuthSignout)
	auth.Post("/:kind/signup", controller.AuthSignup)
	auth.Post("/:kind/signin", controller.AuthSignin)
	auth.Post("/2fa/secret", middleware.JWT(), middleware.OTP(), controller.AuthOtpSecret)
	auth.Post("/2fa/verify", middleware.JWT(), middleware.OTP(), controller.AuthOtpVerify)
	auth.Post("/2fa/validate", middleware.JWT(), controller.AuthOtpValidate)
	auth.Post("/2fa/disable", middleware.JWT(), middleware.OTP(), controller.AuthOtpDisable)

	// Connection requests
	request := api.Group("/request", middleware.JWT(), middleware.OTP())
	request.Post("/send", controller.RequestSend)
	request.Post("/approve", controller.RequestApprove)
	request.Post("/cancel", controller.RequestCancel)
	request.Post("/delete", controller.RequestDelete)
	request.Get("/status", controller.RequestStatus)

	// Messages
	api.Post("/message", middleware.JWT(), middleware.OTP(), controller.MessageSave)
	api.Get("/message", middleware.JWT(), middleware.OTP(), controller.MessageList)

	// Profiles
	profile := api.Group("/profile", middleware.JWT(), middleware.OTP())
	profile.Get("/:kind/:username", controller.ProfileCard)
	profile.Get("/:kind/:username/full", controller.ProfileFull)

	// Chatbot and kundli matching
	api.Post("/chatbot", controller.Chatbot)
	api.Post("/kundli/match", controller.KundliMatch)

	// Admin
	admin := api.Group("/admin", middleware.JWT(), middleware.OTP(), middleware.RBAC())
	admin.Get("/profiles", controller.AdminProfiles)
}
