package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"

	"go.uber.org/zap"
)

// HomePageLimit is how many listings a non full-page caller receives.
const HomePageLimit = 6

const LoadMoreNotice = "You've reached the end of the current listings."

type JobFilter struct {
	Location   string   `json:"location"`
	JobType    string   `json:"jobType"`
	Experience string   `json:"experience"`
	Industry   string   `json:"industry"`
	Search     string   `json:"search"`
	Skills     []string `json:"skills"`
}

var anyValue = map[string]bool{
	"":               true,
	"all":            true,
	"all_locations":  true,
	"all_types":      true,
	"all_levels":     true,
	"all_industries": true,
}

func active(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	return v, !anyValue[v]
}

// FilterJobs returns the jobs matching f, newest first. The input slice and
// its elements are left untouched.
func FilterJobs(jobs []domain.Job, f JobFilter) []domain.Job {
	location, byLocation := active(f.Location)
	jobType, byType := active(f.JobType)
	experience, byExperience := active(f.Experience)
	industry, byIndustry := active(f.Industry)
	search, bySearch := active(f.Search)

	var skills []string
	for _, s := range f.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills = append(skills, s)
		}
	}

	out := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if byLocation && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if byType && strings.ToLower(string(job.Type)) != jobType {
			continue
		}
		if byExperience && !matchExperience(job.Type, experience) {
			continue
		}
		if byIndustry && strings.ToLower(job.Industry) != industry {
			continue
		}
		if bySearch && !matchSearch(job, search) {
			continue
		}
		if len(skills) > 0 && !matchSkills(job.Skills, skills) {
			continue
		}
		out = append(out, job.Clone())
	}

	SortByPostedDate(out)
	return out
}

// matchExperience maps experience levels onto job type text. There is no
// structured level on a job.
func matchExperience(t domain.JobType, level string) bool {
	typ := strings.ToLower(string(t))
	switch level {
	case "entry":
		return strings.Contains(typ, "entry") || strings.Contains(typ, "internship")
	case "internship":
		return strings.Contains(typ, "internship")
	case "1-2":
		return !strings.Contains(typ, "internship")
	case "3+":
		return strings.Contains(typ, "full-time") || strings.Contains(typ, "contract")
	default:
		return true
	}
}

func matchSearch(job domain.Job, term string) bool {
	if strings.Contains(strings.ToLower(job.Title), term) ||
		strings.Contains(strings.ToLower(job.Company), term) ||
		strings.Contains(strings.ToLower(job.Location), term) {
		return true
	}
	for _, s := range job.Skills {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// matchSkills keeps a job when any wanted skill is a substring of any of its
// skills. wanted must already be lower-cased.
func matchSkills(jobSkills, wanted []string) bool {
	for _, js := range jobSkills {
		js = strings.ToLower(js)
		for _, w := range wanted {
			if strings.Contains(js, w) {
				return true
			}
		}
	}
	return false
}

// SortByPostedDate orders the dated jobs newest first among the slots they
// already occupy. Undated jobs stay where they are.
func SortByPostedDate(jobs []domain.Job) {
	slots := make([]int, 0, len(jobs))
	dated := make([]domain.Job, 0, len(jobs))
	for i, j := range jobs {
		if !j.PostedDate.IsZero() {
			slots = append(slots, i)
			dated = append(dated, j)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].PostedDate.After(dated[j].PostedDate)
	})
	for k, i := range slots {
		jobs[i] = dated[k]
	}
}

type Listing struct {
	Jobs    []domain.Job `json:"jobs"`
	Total   int          `json:"total"`
	HasMore bool         `json:"hasMore"`
	Empty   bool         `json:"empty"`
}

func Paginate(jobs []domain.Job, fullPage bool) Listing {
	l := Listing{Jobs: jobs, Total: len(jobs), Empty: len(jobs) == 0}
	if !fullPage && len(jobs) > HomePageLimit {
		l.Jobs = jobs[:HomePageLimit]
		l.HasMore = true
	}
	return l
}

type JobListingService struct {
	catalog       JobCatalog
	activity      ActivityRepo
	loadMoreDelay time.Duration
	log           *zap.Logger
}

func NewJobListingService(catalog JobCatalog, activity ActivityRepo, loadMoreDelay time.Duration, log *zap.Logger) *JobListingService {
	return &JobListingService{catalog: catalog, activity: activity, loadMoreDelay: loadMoreDelay, log: log}
}

// Browse filters the catalog. When viewer is a student with a search term,
// the term is remembered as a recent search.
func (s *JobListingService) Browse(ctx context.Context, f JobFilter, fullPage bool, viewer *domain.User) (Listing, error) {
	jobs, err := s.catalog.List(ctx)
	if err != nil {
		return Listing{}, apperrors.Internal("failed to load jobs", err)
	}

	listing := Paginate(FilterJobs(jobs, f), fullPage)

	if viewer != nil && viewer.Role == domain.RoleStudent && s.activity != nil {
		if term := strings.TrimSpace(f.Search); term != "" {
			if err := s.activity.RecordSearch(ctx, viewer.ID, term); err != nil {
				s.log.Warn("failed to record search", zap.String("user_id", viewer.ID), zap.Error(err))
			}
		}
	}

	return listing, nil
}

// LoadMore is a placeholder for server-side paging: it waits, then reports
// that nothing more is available.
func (s *JobListingService) LoadMore(ctx context.Context) (string, error) {
	if s.loadMoreDelay > 0 {
		t := time.NewTimer(s.loadMoreDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return LoadMoreNotice, nil
}

func (s *JobListingService) Job(ctx context.Context, id int) (*domain.Job, error) {
	job, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load job", err)
	}
	if job == nil {
		return nil, apperrors.NotFound("job not found", nil)
	}
	return job, nil
}
