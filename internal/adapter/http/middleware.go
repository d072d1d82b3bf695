package http

import (
	"time"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"
	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SessionCookie = "jobhive_session"
	SessionHeader = "X-Session-ID"

	sessionLocal = "session"
)

// Sessions resolves the session id from the cookie or header, minting one
// when absent, and hydrates it into the request locals.
func (h *Handler) Sessions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if sid == "" {
			sid = c.Get(SessionHeader)
		}
		if sid == "" {
			sid = usecase.NewSessionID()
			h.setSessionCookie(c, sid)
		}
		c.Set(SessionHeader, sid)

		sess, err := h.sessions.Hydrate(c.UserContext(), sid)
		if err != nil {
			return err
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func session(c *fiber.Ctx) usecase.Session {
	sess, _ := c.Locals(sessionLocal).(usecase.Session)
	return sess
}

// RequireAuth rejects requests without a signed-in user.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session(c).Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}
		return c.Next()
	}
}

// RequirePage applies the role guard for page.
func RequirePage(page domain.Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := domain.Access(page, session(c).User)
		switch d.Kind {
		case domain.Allow:
			return c.Next()
		case domain.RequireSignIn:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": d.Message})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": d.Message})
		}
	}
}

func (h *Handler) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if de, ok := apperrors.As(err); ok {
				status = de.HTTPStatus()
			}
		}
		h.log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Bool("session", session(c).Authenticated),
		)
		return err
	}
}
