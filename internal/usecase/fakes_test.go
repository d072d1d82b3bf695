package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"jobhive/internal/domain"

	"github.com/google/uuid"
)

type fakeStorage struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeStorage() *fakeStorage { return &fakeStorage{data: map[string]string{}} }

func (f *fakeStorage) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStorage) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeAuth struct {
	mu       sync.Mutex
	users    map[string]domain.User
	password map[string]string
	// staleCheck makes EmailTaken always answer false, as when a concurrent
	// registration lands between the check and the insert.
	staleCheck bool
}

func newFakeAuth() *fakeAuth {
	a := &fakeAuth{users: map[string]domain.User{}, password: map[string]string{}}
	for _, u := range []domain.User{
		{ID: "1", Email: "student@jobhive.com", Name: "Student User", Role: domain.RoleStudent, Skills: []string{"Go"}},
		{ID: "2", Email: "employer@jobhive.com", Name: "Employer User", Role: domain.RoleEmployer},
		{ID: "3", Email: "admin@jobhive.com", Name: "Admin User", Role: domain.RoleAdmin},
	} {
		a.users[u.Email] = u
		a.password[u.Email] = "password123"
	}
	return a
}

func (a *fakeAuth) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	email = strings.ToLower(email)
	u, ok := a.users[email]
	if !ok || a.password[email] != password {
		return nil, nil
	}
	return &u, nil
}

func (a *fakeAuth) EmailTaken(_ context.Context, email string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.staleCheck {
		return false, nil
	}
	_, ok := a.users[strings.ToLower(email)]
	return ok, nil
}

func (a *fakeAuth) CreateAccount(_ context.Context, u domain.User, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, ok := a.users[email]; ok {
		return ErrEmailTaken
	}
	u.ID = uuid.NewString()
	a.users[email] = u
	a.password[email] = password
	return nil
}

type fakeCatalog struct {
	jobs []domain.Job
	err  error
}

func (c *fakeCatalog) List(context.Context) ([]domain.Job, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Job, len(c.jobs))
	for i, j := range c.jobs {
		out[i] = j.Clone()
	}
	return out, nil
}

func (c *fakeCatalog) Get(_ context.Context, id int) (*domain.Job, error) {
	if c.err != nil {
		return nil, c.err
	}
	for _, j := range c.jobs {
		if j.ID == id {
			cp := j.Clone()
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeActivity struct {
	mu       sync.Mutex
	saved    map[string][]int
	applied  map[string][]int
	searches map[string][]string
}

func newFakeActivity() *fakeActivity {
	return &fakeActivity{saved: map[string][]int{}, applied: map[string][]int{}, searches: map[string][]string{}}
}

func (f *fakeActivity) SaveJob(_ context.Context, u string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[u] = append(f.saved[u], id)
	return nil
}

func (f *fakeActivity) UnsaveJob(_ context.Context, u string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keep []int
	for _, v := range f.saved[u] {
		if v != id {
			keep = append(keep, v)
		}
	}
	f.saved[u] = keep
	return nil
}

func (f *fakeActivity) SavedJobIDs(_ context.Context, u string) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.saved[u]...), nil
}

func (f *fakeActivity) Apply(_ context.Context, u string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied[u] = append(f.applied[u], id)
	return nil
}

func (f *fakeActivity) AppliedJobIDs(_ context.Context, u string) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.applied[u]...), nil
}

func (f *fakeActivity) RecordSearch(_ context.Context, u, term string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches[u] = append([]string{term}, f.searches[u]...)
	return nil
}

func (f *fakeActivity) RecentSearches(_ context.Context, u string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	terms := f.searches[u]
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return append([]string{}, terms...), nil
}

type fakePostings struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.JobPosting
}

func newFakePostings() *fakePostings {
	return &fakePostings{byID: map[uuid.UUID]domain.JobPosting{}}
}

func (f *fakePostings) Save(_ context.Context, p *domain.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePostings) Get(_ context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePostings) List(_ context.Context, status domain.PostingStatus) ([]domain.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JobPosting
	for _, p := range f.byID {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostings) ListByEmployer(_ context.Context, employerID string) ([]domain.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JobPosting
	for _, p := range f.byID {
		if p.EmployerID == employerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStats struct {
	stats PlatformStats
	err   error
}

func (f fakeStats) Stats(context.Context) (PlatformStats, error) { return f.stats, f.err }

// fakeRenderer blocks until release is closed when set, so tests can hold an
// export open.
type fakeRenderer struct {
	mu      sync.Mutex
	calls   int
	lastID  string
	html    string
	pages   int
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeRenderer) RenderResumePDF(ctx context.Context, html, elementID string) (*PDF, error) {
	f.mu.Lock()
	f.calls++
	f.lastID = elementID
	f.html = html
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, errors.New("render never released")
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &PDF{Data: []byte("%PDF"), Pages: f.pages}, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleJobs() []domain.Job {
	return []domain.Job{
		{ID: 1, Title: "UI/UX Design Intern", Company: "TechBee", Type: domain.JobTypeInternship, Location: "Amman, Jordan (Remote)",
			Skills: []string{"Figma", "UI Design"}, Industry: "Design", PostedDate: day("2025-05-01")},
		{ID: 2, Title: "Junior Web Developer", Company: "HiveWorks", Type: domain.JobTypeFullTime, Location: "Cairo, Egypt (Hybrid)",
			Skills: []string{"React", "JavaScript"}, Industry: "Technology", PostedDate: day("2025-05-06")},
		{ID: 3, Title: "Marketing Assistant", Company: "BeeMarketing", Type: domain.JobTypeFullTime, Location: "Dubai, UAE (On-site)",
			Skills: []string{"Social Media"}, Industry: "Marketing", PostedDate: day("2025-05-03")},
		{ID: 4, Title: "Support Specialist", Company: "HelpDesk", Type: domain.JobTypePartTime, Location: "Remote",
			Skills: []string{"Communication"}, Industry: "Customer Service", PostedDate: day("2025-04-20")},
		{ID: 5, Title: "Brand Designer", Company: "Studio", Type: domain.JobTypeContract, Location: "Amman, Jordan",
			Skills: []string{"Illustrator", "Figma"}, Industry: "Design", PostedDate: day("2025-04-28")},
		{ID: 6, Title: "Finance Trainee", Company: "Ledger", Type: domain.JobTypeInternship, Location: "Riyadh, KSA",
			Skills: []string{"Excel"}, Industry: "Finance", PostedDate: day("2025-04-15")},
		{ID: 7, Title: "Copywriter", Company: "Words", Type: domain.JobTypeFreelance, Location: "Remote",
			Skills: []string{"Writing"}, Industry: "Marketing"},
	}
}
