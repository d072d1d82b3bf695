package usecase

import (
	"context"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"

	"go.uber.org/zap"
)

const recentSearchLimit = 10

type StudentDashboard struct {
	Message        string       `json:"message"`
	AppliedJobs    []domain.Job `json:"appliedJobs"`
	SavedJobs      []domain.Job `json:"savedJobs"`
	RecentSearches []string     `json:"recentSearches"`
}

type EmployerAnalytics struct {
	TotalPostings int `json:"totalPostings"`
	Pending       int `json:"pending"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
}

type EmployerDashboard struct {
	Message      string              `json:"message"`
	PostedJobs   []domain.JobPosting `json:"postedJobs"`
	Applications []interface{}       `json:"applications"`
	Analytics    EmployerAnalytics   `json:"analytics"`
}

type AdminDashboard struct {
	Message string        `json:"message"`
	Stats   PlatformStats `json:"stats"`
}

type DashboardService struct {
	activity *ActivityService
	postings PostingRepo
	stats    StatsRepo
	log      *zap.Logger
}

func NewDashboardService(activity *ActivityService, postings PostingRepo, stats StatsRepo, log *zap.Logger) *DashboardService {
	return &DashboardService{activity: activity, postings: postings, stats: stats, log: log}
}

// For builds the payload for u's role. Users without a student or employer
// role get the admin shape.
func (s *DashboardService) For(ctx context.Context, u domain.User) (interface{}, error) {
	switch u.Role {
	case domain.RoleStudent:
		return s.student(ctx, u)
	case domain.RoleEmployer:
		return s.employer(ctx, u)
	default:
		return s.admin(ctx)
	}
}

func (s *DashboardService) student(ctx context.Context, u domain.User) (*StudentDashboard, error) {
	d := &StudentDashboard{
		Message:        "Student Dashboard",
		AppliedJobs:    []domain.Job{},
		SavedJobs:      []domain.Job{},
		RecentSearches: []string{},
	}

	applied, err := s.activity.AppliedJobs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	saved, err := s.activity.SavedJobs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	searches, err := s.activity.RecentSearches(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	d.AppliedJobs = append(d.AppliedJobs, applied...)
	d.SavedJobs = append(d.SavedJobs, saved...)
	d.RecentSearches = append(d.RecentSearches, searches...)
	return d, nil
}

func (s *DashboardService) employer(ctx context.Context, u domain.User) (*EmployerDashboard, error) {
	postings, err := s.postings.ListByEmployer(ctx, u.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to load postings", err)
	}

	d := &EmployerDashboard{
		Message:      "Employer Dashboard",
		PostedJobs:   append([]domain.JobPosting{}, postings...),
		Applications: []interface{}{},
	}
	d.Analytics.TotalPostings = len(postings)
	for _, p := range postings {
		switch p.Status {
		case domain.PostingPending:
			d.Analytics.Pending++
		case domain.PostingApproved:
			d.Analytics.Approved++
		case domain.PostingRejected:
			d.Analytics.Rejected++
		}
	}
	return d, nil
}

func (s *DashboardService) admin(ctx context.Context) (*AdminDashboard, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load stats", err)
	}
	return &AdminDashboard{Message: "Admin Dashboard", Stats: stats}, nil
}
