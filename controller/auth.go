package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"matrimony-service/config"
	"matrimony-service/database"
	"matrimony-service/errs"
	"matrimony-service/model"
	"matrimony-service/service"
	"matrimony-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

type AuthLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthRenewTokenInput struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthOtpSecretInput struct {
	Password string `json:"password"`
}

type AuthOtpVerifyInput struct {
	Token string `json:"token"`
}

type AuthOtpValidateInput struct {
	Token string `json:"token"`
}

type AuthOtpDisableInput struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func safeFilename(name string) string {
	return unsafeFilename.ReplaceAllString(filepath.Base(name), "_")
}

func uploadDir() string {
	if dir := config.Config("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// AuthSignup creates a bride or groom profile from the multipart signup form.
// Photos and the optional intro video land under uploads/<username>/ and are
// recorded as comma-joined relative paths, matching what the card views serve.
func AuthSignup(c *fiber.Ctx) error {
	kind := model.Kind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	in := service.ProfileInput{
		FullName:    c.FormValue("full_name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		Country:     c.FormValue("country"),
		State:       c.FormValue("state"),
		City:        c.FormValue("city"),
		Address:     c.FormValue("address"),
		Diet:        c.FormValue("diet"),
		Complexion:  c.FormValue("complexion"),
		Height:      c.FormValue("height"),
		Weight:      c.FormValue("weight"),
		Username:    c.FormValue("username"),
		Password:    c.FormValue("password"),
		Manglik:     c.FormValue("manglik"),
		DateOfBirth: c.FormValue("dob"),
		Profession:  c.FormValue("profession"),
		Package:     c.FormValue("package"),
		Education:   c.FormValue("education"),
		Likes:       c.FormValue("likes"),
		Dislikes:    c.FormValue("dislikes"),
	}

	// Reject before anything touches the upload tree; a failed signup must
	// not leave files under an existing user's publicly served directory.
	if in.Username == "" || in.Password == "" || in.FullName == "" {
		return fail(c, errs.New(errs.CodeInvalidArgument, "full_name, username and password are required"))
	}
	if _, err := svc.Profile(kind, in.Username); err == nil {
		return fail(c, errs.Newf(errs.CodeAlreadyExists, "username %q is already registered", in.Username))
	} else if errs.Code(err) != errs.CodeNotFound {
		return fail(c, err)
	}

	// Generate OTP secret
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.Config("OTP_ISSUER"),
		AccountName: in.Username,
		SecretSize:  15,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}
	in.OtpSecret = key.Secret()

	// Store uploaded photos and video; paths are relative to the upload
	// root, per-username directory.
	if form, err := c.MultipartForm(); err == nil {
		userDir := filepath.Join(uploadDir(), in.Username)
		if err := os.MkdirAll(userDir, 0o755); err == nil {
			for _, photo := range form.File["images[]"] {
				fn := safeFilename(photo.Filename)
				if fn == "" {
					continue
				}
				if err := c.SaveFile(photo, filepath.Join(userDir, fn)); err == nil {
					in.Images = append(in.Images, filepath.ToSlash(filepath.Join(in.Username, fn)))
				}
			}
			if videos := form.File["video_introduction"]; len(videos) > 0 {
				fn := safeFilename(videos[0].Filename)
				if err := c.SaveFile(videos[0], filepath.Join(userDir, fn)); err == nil {
					in.Video = filepath.ToSlash(filepath.Join(in.Username, fn))
				}
			}
		}
	}

	profile, err := svc.CreateProfile(kind, in)
	if err != nil {
		return fail(c, err)
	}

	// Add casbin grouping policy; the policy store rides on the shared
	// Postgres connection and is absent in storage-only test setups.
	if database.Postgres != nil {
		database.Casbin().AddGroupingPolicy(profile.Username, string(kind))
	}

	return ok(c, fiber.Map{
		"id":       profile.ID,
		"username": profile.Username,
	})
}

// AuthSignin checks credentials against the kind's table and hands out the
// JWT pair, pinning the refresh token in Redis.
func AuthSignin(c *fiber.Ctx) error {
	kind := model.Kind(c.Params("kind"))

	input := new(AuthLoginInput)
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	profile, err := svc.Authenticate(kind, input.Username, input.Password)
	if err != nil {
		return fail(c, err)
	}

	tokens, err := utils.GenerateTokens(profile.Username, string(kind), profile.OtpEnabled)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if err := database.Redis[0].Set(context.Background(), refreshKey(string(kind), profile.Username), tokens.Refresh, 0).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return ok(c, fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
		"2fa":     profile.OtpEnabled,
		"profile": profile,
	})
}

func AuthTokenRenew(c *fiber.Ctx) error {
	renew := &AuthRenewTokenInput{}
	if err := c.BodyParser(renew); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	claims, err := utils.CheckAndExtractTokenMetadata(renew.RefreshToken, "JWT_REFRESH_KEY")
	if err != nil {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid token",
			"data":    nil,
		})
	}

	userToken, err := database.Redis[0].Get(context.Background(), refreshKey(claims.Kind, claims.Username)).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if userToken != renew.RefreshToken {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized, your refresh token was already used",
			"data":    nil,
		})
	}

	tokens, err := utils.GenerateTokens(claims.Username, claims.Kind, claims.Otp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if err := database.Redis[0].Set(context.Background(), refreshKey(claims.Kind, claims.Username), tokens.Refresh, 0).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return ok(c, fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
		"2fa":     claims.Otp,
	})
}

// AuthSignout drops the pinned refresh token, ending the session server-side.
func AuthSignout(c *fiber.Ctx) error {
	username, kind := claimsOf(c)

	if err := database.Redis[0].Del(context.Background(), refreshKey(kind, username)).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return ok(c, nil)
}

func refreshKey(kind, username string) string {
	return fmt.Sprintf("refresh:%s:%s", kind, username)
}

func AuthOtpSecret(c *fiber.Ctx) error {
	secret := &AuthOtpSecretInput{}
	if err := c.BodyParser(secret); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	username, kind := claimsOf(c)
	profile, err := svc.Profile(model.Kind(kind), username)
	if err != nil {
		return fail(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(secret.Password)); err != nil {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid password",
			"data":    nil,
		})
	}

	return ok(c, fiber.Map{
		"secret": profile.OtpSecret,
		"url": fmt.Sprintf("otpauth://totp/%s:%s?algorithm=SHA1&digits=6&issuer=%s&period=30&secret=%s",
			config.Config("OTP_ISSUER"),
			profile.Username,
			config.Config("OTP_ISSUER"),
			profile.OtpSecret,
		),
	})
}

func AuthOtpVerify(c *fiber.Ctx) error {
	verify := &AuthOtpVerifyInput{}
	if err := c.BodyParser(verify); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	username, kind := claimsOf(c)
	profile, err := svc.Profile(model.Kind(kind), username)
	if err != nil {
		return fail(c, err)
	}

	if profile.OtpEnabled {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Verification has already been performed earlier",
			"data":    nil,
		})
	}

	if !totp.Validate(verify.Token, profile.OtpSecret) {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid token",
			"data":    nil,
		})
	}

	if err := svc.SetOtpEnabled(model.Kind(kind), username, true); err != nil {
		return fail(c, err)
	}

	return ok(c, nil)
}

func AuthOtpValidate(c *fiber.Ctx) error {
	validate := &AuthOtpValidateInput{}
	if err := c.BodyParser(validate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	username, kind := claimsOf(c)
	profile, err := svc.Profile(model.Kind(kind), username)
	if err != nil {
		return fail(c, err)
	}

	if !profile.OtpEnabled {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "2FA has been disabled",
			"data":    nil,
		})
	}

	if !totp.Validate(validate.Token, profile.OtpSecret) {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid token",
			"data":    nil,
		})
	}

	tokens, err := utils.GenerateTokens(username, kind, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if err := database.Redis[0].Set(context.Background(), refreshKey(kind, username), tokens.Refresh, 0).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return ok(c, fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func AuthOtpDisable(c *fiber.Ctx) error {
	disable := &AuthOtpDisableInput{}
	if err := c.BodyParser(disable); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	username, kind := claimsOf(c)
	profile, err := svc.Profile(model.Kind(kind), username)
	if err != nil {
		return fail(c, err)
	}

	if !profile.OtpEnabled {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "2fa not enabled",
			"data":    nil,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(disable.Password)); err != nil {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid password",
			"data":    nil,
		})
	}

	if !totp.Validate(disable.Token, profile.OtpSecret) {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid token",
			"data":    nil,
		})
	}

	if err := svc.SetOtpEnabled(model.Kind(kind), username, false); err != nil {
		return fail(c, err)
	}

	return ok(c, nil)
}
