package http

import (
	"strings"

	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type listingResp struct {
	usecase.Listing
	ResetFilters string `json:"resetFilters,omitempty"`
}

// ListJobs filters the catalog. Skills may be repeated or comma separated;
// full=true lifts the home page limit.
func (h *Handler) ListJobs(c *fiber.Ctx) error {
	f := usecase.JobFilter{
		Location:   c.Query("location"),
		JobType:    c.Query("jobType"),
		Experience: c.Query("experience"),
		Industry:   c.Query("industry"),
		Search:     c.Query("search"),
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("skills") {
		for _, s := range strings.Split(string(raw), ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Skills = append(f.Skills, s)
			}
		}
	}

	listing, err := h.jobs.Browse(c.UserContext(), f, c.QueryBool("full"), session(c).User)
	if err != nil {
		return err
	}
	resp := listingResp{Listing: listing}
	if listing.Empty {
		resp.ResetFilters = "/api/jobs"
	}
	return c.JSON(resp)
}

func (h *Handler) LoadMore(c *fiber.Ctx) error {
	notice, err := h.jobs.LoadMore(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": notice, "jobs": []interface{}{}})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Job(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

func (h *Handler) SaveJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := h.activity.SaveJob(c.UserContext(), session(c).User.ID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UnsaveJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := h.activity.UnsaveJob(c.UserContext(), session(c).User.ID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ApplyJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := h.activity.Apply(c.UserContext(), session(c).User.ID, id); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Application submitted"})
}

func (h *Handler) SavedJobs(c *fiber.Ctx) error {
	jobs, err := h.activity.SavedJobs(c.UserContext(), session(c).User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *Handler) AppliedJobs(c *fiber.Ctx) error {
	jobs, err := h.activity.AppliedJobs(c.UserContext(), session(c).User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func jobID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid job id")
	}
	return id, nil
}
