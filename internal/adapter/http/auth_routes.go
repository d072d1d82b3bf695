package http

import (
	"strings"

	"jobhive/internal/domain"
	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	ProfilePicture string   `json:"profilePicture"`
	Title          string   `json:"title"`
	Bio            string   `json:"bio"`
	Phone          string   `json:"phone"`
	Location       string   `json:"location"`
	Website        string   `json:"website"`
	Skills         []string `json:"skills"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	sid := usecase.NewSessionID()
	ok, err := h.sessions.Login(c.UserContext(), sid, req.Email, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}
	return h.replyWithNewSession(c, sid, fiber.StatusOK)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext(), session(c).ID); err != nil {
		return err
	}
	c.ClearCookie(SessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}
	role := domain.RoleStudent
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok || !r.CanSelfRegister() {
			return fiber.NewError(fiber.StatusBadRequest, "role must be student or employer")
		}
		role = r
	}

	u := domain.User{
		Email:          req.Email,
		Name:           req.Name,
		Role:           role,
		ProfilePicture: req.ProfilePicture,
		Title:          req.Title,
		Bio:            req.Bio,
		Phone:          req.Phone,
		Location:       req.Location,
		Website:        req.Website,
		Skills:         req.Skills,
	}
	sid := usecase.NewSessionID()
	ok, err := h.sessions.Register(c.UserContext(), sid, u, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "An account with this email already exists"})
	}
	return h.replyWithNewSession(c, sid, fiber.StatusCreated)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var patch domain.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	u, err := h.sessions.UpdateProfile(c.UserContext(), session(c).ID, patch)
	if err != nil {
		return err
	}
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	if h.users != nil {
		if err := h.users.Upsert(c.UserContext(), *u); err != nil {
			return withMessage(err, "Failed to update profile")
		}
	}
	return c.JSON(fiber.Map{"user": u})
}

// CurrentUser returns the directory record for the signed-in user, or the
// session copy when the directory does not know them.
func (h *Handler) CurrentUser(c *fiber.Ctx) error {
	u, err := h.currentUser(c)
	if err != nil {
		return withMessage(err, "Failed to fetch user")
	}
	return c.JSON(u)
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	u, err := h.currentUser(c)
	if err != nil {
		return withMessage(err, "Failed to fetch dashboard")
	}
	payload, err := h.dashboard.For(c.UserContext(), *u)
	if err != nil {
		return withMessage(err, "Failed to fetch dashboard")
	}
	return c.JSON(payload)
}

func (h *Handler) currentUser(c *fiber.Ctx) (*domain.User, error) {
	sess := session(c)
	if h.users != nil {
		u, err := h.users.GetUser(c.UserContext(), sess.User.ID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}
	}
	return sess.User, nil
}

// replyWithNewSession hands the client the freshly signed-in session id.
// Anything the previous id held moves over and the previous id is retired.
func (h *Handler) replyWithNewSession(c *fiber.Ctx, sid string, status int) error {
	ctx := c.UserContext()
	if err := h.sessions.Rotate(ctx, session(c).ID, sid); err != nil {
		return err
	}
	sess, err := h.sessions.Hydrate(ctx, sid)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, sid)
	c.Set(SessionHeader, sid)
	return c.Status(status).JSON(fiber.Map{"user": sess.User})
}
