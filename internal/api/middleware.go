package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	contextUserIDKey    = "current_user_id"
	contextRequestIDKey = "requestid"
	bearerPrefix        = "bearer "
)

var (
	errMissingAuthorization = errors.New("authorization header required")
	errInvalidToken         = errors.New("invalid token")
	errExpiredToken         = errors.New("token expired")
)

type authClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(contextUserIDKey).(uint)
	return userID, ok && userID != 0
}

// AuthRequired accepts an HS256 bearer token and exposes its user_id claim to
// later handlers.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	userID, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	}
	c.Locals(contextUserIDKey, userID)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (uint, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return 0, errMissingAuthorization
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return 0, errInvalidToken
	}
	tokenValue := strings.TrimSpace(header[len(bearerPrefix):])

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		return handler.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errExpiredToken
		}
		return 0, errInvalidToken
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, errInvalidToken
	}
	return claims.UserID, nil
}
