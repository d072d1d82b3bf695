package http

import (
	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) SubmitPosting(c *fiber.Ctx) error {
	var in usecase.PostingInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	p, err := h.postings.Submit(c.UserContext(), session(c).User.ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": usecase.PostedMessage, "posting": p})
}

func (h *Handler) ListPostings(c *fiber.Ctx) error {
	postings, err := h.postings.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"postings": postings})
}

func (h *Handler) ApprovePosting(c *fiber.Ctx) error {
	id, err := postingID(c)
	if err != nil {
		return err
	}
	p, err := h.postings.Approve(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handler) RejectPosting(c *fiber.Ctx) error {
	id, err := postingID(c)
	if err != nil {
		return err
	}
	p, err := h.postings.Reject(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func postingID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid posting id")
	}
	return id, nil
}
