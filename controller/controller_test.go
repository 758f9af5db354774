package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"matrimony-service/model"
	"matrimony-service/service"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the JWT-protected routes behind a stub auth middleware
// that trusts X-Test-Username / X-Test-Kind headers instead of a real token.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.BrideProfile{},
		&model.GroomProfile{},
		&model.ConnectionRequest{},
		&model.Message{},
	))
	Init(db)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"username": c.Get("X-Test-Username"),
			"kind":     c.Get("X-Test-Kind"),
			"otp":      false,
		}})
		return c.Next()
	})

	app.Post("/request/send", RequestSend)
	app.Post("/request/approve", RequestApprove)
	app.Post("/request/cancel", RequestCancel)
	app.Post("/request/delete", RequestDelete)
	app.Get("/request/status", RequestStatus)
	app.Post("/message", MessageSave)
	app.Get("/message", MessageList)
	app.Get("/profile/:kind/:username", ProfileCard)
	app.Get("/profile/:kind/:username/full", ProfileFull)
	app.Post("/auth/:kind/signup", AuthSignup)
	app.Post("/chatbot", Chatbot)

	return app
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func perform(t *testing.T, app *fiber.App, method, path, username, kind string, body any) (int, envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-Username", username)
	req.Header.Set("X-Test-Kind", kind)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp.StatusCode, env
}

func post(t *testing.T, app *fiber.App, path, username, kind string, body any) (int, envelope) {
	t.Helper()
	return perform(t, app, http.MethodPost, path, username, kind, body)
}

func get(t *testing.T, app *fiber.App, path, username, kind string) (int, envelope) {
	t.Helper()
	return perform(t, app, http.MethodGet, path, username, kind, nil)
}

func seedCouple(t *testing.T) {
	t.Helper()
	for _, p := range []struct {
		kind     model.Kind
		username string
	}{
		{model.KindGroom, "rahul"},
		{model.KindGroom, "vikram"},
		{model.KindBride, "priya"},
		{model.KindBride, "anita"},
	} {
		_, err := svc.CreateProfile(p.kind, service.ProfileInput{
			FullName: "Test " + p.username,
			Username: p.username,
			Password: "secret123",
			City:     "Mumbai",
		})
		require.NoError(t, err)
	}
}
