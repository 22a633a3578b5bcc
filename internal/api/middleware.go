package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/flowcast/internal/models"
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// AuthRequired resolves the session cookie into the current user. Users holding a
// temporary password may only change it or log out.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && c.Path() != "/api/auth/password" && c.Path() != "/api/auth/me" {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("missing auth cookie")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user, err := handler.authService.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestLogger tags each request with an id and logs it once it completes.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()
	requestID := strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Locals(contextRequestIDKey, requestID)
	c.Set(fiber.HeaderXRequestID, requestID)

	chainErr := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(chainErr, &fiberErr) {
		status = fiberErr.Code
	}

	fields := []any{
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"latency_ms", time.Since(started).Milliseconds(),
	}
	if user, ok := currentUser(c); ok {
		fields = append(fields, "user_id", user.ID)
	}

	switch {
	case status >= fiber.StatusInternalServerError:
		handler.log.Error("request failed", fields...)
	case status >= fiber.StatusBadRequest:
		handler.log.Warn("request rejected", fields...)
	default:
		handler.log.Info("request", fields...)
	}
	return chainErr
}
