package http

import (
	"encoding/json"
	"fmt"
	"strconv"

	"jobhive/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetResume(c *fiber.Ctx) error {
	data, err := h.resumes.Load(c.UserContext(), session(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// PatchResume merges the posted top-level fields into the saved resume.
func (h *Handler) PatchResume(c *fiber.Ctx) error {
	var partial map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &partial); err != nil || partial == nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	sid := session(c).ID
	if err := h.resumes.Save(c.UserContext(), sid, partial); err != nil {
		return err
	}
	data, err := h.resumes.Load(c.UserContext(), sid)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	t, err := h.resumes.Template(c.UserContext(), session(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"template": t})
}

func (h *Handler) PutTemplate(c *fiber.Ctx) error {
	var req struct {
		Template string `json:"template"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.resumes.SaveTemplate(c.UserContext(), session(c).ID, req.Template); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"template": req.Template})
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(domain.Templates)
}

func (h *Handler) PreviewResume(c *fiber.Ctx) error {
	html, err := h.resumes.Preview(c.UserContext(), session(c).ID, c.Query("template"))
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// ExportResume streams the resume as a PDF download.
func (h *Handler) ExportResume(c *fiber.Ctx) error {
	res, err := h.resumes.Export(c.UserContext(), session(c).ID, c.Query("template"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Set("X-PDF-Pages", strconv.Itoa(res.PDF.Pages))
	return c.Send(res.PDF.Data)
}
