package http

import (
	"jobhive/internal/domain"
	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the JobHive use cases over fiber.
type Handler struct {
	sessions  *usecase.SessionStore
	users     usecase.UserDirectory
	jobs      *usecase.JobListingService
	resumes   *usecase.ResumeService
	postings  *usecase.PostingService
	activity  *usecase.ActivityService
	dashboard *usecase.DashboardService
	secure    bool
	log       *zap.Logger
}

type Deps struct {
	Sessions  *usecase.SessionStore
	Users     usecase.UserDirectory
	Jobs      *usecase.JobListingService
	Resumes   *usecase.ResumeService
	Postings  *usecase.PostingService
	Activity  *usecase.ActivityService
	Dashboard *usecase.DashboardService
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	Log           *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		sessions:  d.Sessions,
		users:     d.Users,
		jobs:      d.Jobs,
		resumes:   d.Resumes,
		postings:  d.Postings,
		activity:  d.Activity,
		dashboard: d.Dashboard,
		secure:    d.SecureCookies,
		log:       d.Log,
	}
}

// NewApp builds a fiber app with the JobHive error handler and routes.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jobhive",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(h.log),
	})
	h.Register(app)
	return app
}

func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api", h.RequestLogger(), h.Sessions())

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Post("/register", h.SignUp)
	auth.Patch("/profile", RequireAuth(), h.UpdateProfile)
	auth.Get("/user", RequireAuth(), h.CurrentUser)

	api.Get("/dashboard", RequirePage(domain.PageDashboard), h.Dashboard)

	api.Get("/jobs", h.ListJobs)
	api.Post("/jobs/load-more", h.LoadMore)
	api.Get("/jobs/:id", h.GetJob)
	api.Post("/jobs/:id/save", RequirePage(domain.PageActivity), h.SaveJob)
	api.Delete("/jobs/:id/save", RequirePage(domain.PageActivity), h.UnsaveJob)
	api.Post("/jobs/:id/apply", RequirePage(domain.PageActivity), h.ApplyJob)
	api.Get("/saved-jobs", RequirePage(domain.PageActivity), h.SavedJobs)
	api.Get("/applied-jobs", RequirePage(domain.PageActivity), h.AppliedJobs)

	resume := api.Group("/resume", RequirePage(domain.PageResumeBuilder))
	resume.Get("/", h.GetResume)
	resume.Patch("/", h.PatchResume)
	resume.Get("/template", h.GetTemplate)
	resume.Put("/template", h.PutTemplate)
	resume.Get("/templates", h.ListTemplates)
	resume.Get("/preview", h.PreviewResume)
	resume.Post("/export", h.ExportResume)

	api.Post("/postings", RequirePage(domain.PagePostJob), h.SubmitPosting)

	admin := api.Group("/admin", RequirePage(domain.PageAdminPanel))
	admin.Get("/postings", h.ListPostings)
	admin.Post("/postings/:id/approve", h.ApprovePosting)
	admin.Post("/postings/:id/reject", h.RejectPosting)
}
