package utils

import (
	"strconv"
	"time"

	"matrimony-service/config"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	Username string
	Kind     string
	Otp      bool
	Exp      int64
}

// GenerateTokens returns a new Access & Refresh token pair. Username and kind
// identify the profile; otp marks a login still pending 2FA validation.
func GenerateTokens(username, kind string, otp bool) (*Tokens, error) {
	accessToken, err := generateToken(
		username,
		kind,
		otp,
		"JWT_ACCESS_EXPIRE",
		"JWT_ACCESS_KEY",
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(
		username,
		kind,
		otp,
		"JWT_REFRESH_EXPIRE",
		"JWT_REFRESH_KEY",
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(username, kind string, otp bool, expire string, key string) (string, error) {
	minutesCount, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{}

	claims["username"] = username
	claims["kind"] = kind
	claims["otp"] = otp
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	t, err := token.SignedString([]byte(config.Config(key)))
	if err != nil {
		return "", err
	}

	return t, nil
}

func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(jwt.MapClaims); ok && t.Valid {
		return &TokenMetadata{
			Username: claims["username"].(string),
			Kind:     claims["kind"].(string),
			Otp:      claims["otp"].(bool),
			Exp:      int64(claims["exp"].(float64)),
		}, nil
	}

	return nil, err
}
