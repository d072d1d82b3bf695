package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"jobhive/internal/adapter/auth"
	"jobhive/internal/adapter/repository"
	"jobhive/internal/adapter/storage"
	"jobhive/internal/domain"
	"jobhive/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	pages int
}

func (f *fakeRenderer) RenderResumePDF(_ context.Context, html, elementID string) (*usecase.PDF, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if !strings.Contains(html, `id="`+elementID+`"`) {
		return nil, errors.New("element missing")
	}
	return &usecase.PDF{Data: []byte("%PDF-1.4 fake"), Pages: f.pages}, nil
}

type brokenDirectory struct{}

func (brokenDirectory) GetUser(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}

func (brokenDirectory) Upsert(context.Context, domain.User) error {
	return errors.New("connection refused")
}

// memDirectory stands in for the users table.
type memDirectory struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemDirectory() *memDirectory {
	d := &memDirectory{users: map[string]domain.User{}}
	for _, u := range auth.SeedUsers() {
		d.users[u.ID] = u
	}
	return d
}

func (d *memDirectory) GetUser(_ context.Context, id string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (d *memDirectory) Upsert(_ context.Context, u domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
	return nil
}

type fixture struct {
	app      *fiber.App
	renderer *fakeRenderer
}

func newFixture(t *testing.T, users usecase.UserDirectory) *fixture {
	t.Helper()
	log := zap.NewNop()

	authn, err := auth.NewMemory(auth.WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("auth.NewMemory() error = %v", err)
	}
	store := storage.NewMemory()
	jobs := repository.NewJobsRepo(nil)
	activityRepo := repository.NewActivityRepo(nil)
	postingsRepo := repository.NewPostingsRepo(nil)
	stats := repository.NewStatsRepo(
		func(context.Context) (int, error) { return authn.Count(), nil },
		jobs.Count, postingsRepo, log)
	renderer := &fakeRenderer{pages: 2}

	activity := usecase.NewActivityService(jobs, activityRepo, log)
	if users == nil {
		users = repository.NewUsersRepo(nil)
	}
	h := NewHandler(Deps{
		Sessions:  usecase.NewSessionStore(store, authn, log),
		Users:     users,
		Jobs:      usecase.NewJobListingService(jobs, activityRepo, 0, log),
		Resumes:   usecase.NewResumeService(store, renderer, log),
		Postings:  usecase.NewPostingService(postingsRepo, log),
		Activity:  activity,
		Dashboard: usecase.NewDashboardService(activity, postingsRepo, stats, log),
		Log:       log,
	})
	return &fixture{app: NewApp(h), renderer: renderer}
}

func (f *fixture) do(t *testing.T, method, path, sid string, body interface{}) (*nethttp.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set(SessionHeader, sid)
	}
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

// login signs email in from sid and returns the session id issued for the
// signed-in session.
func (f *fixture) login(t *testing.T, sid, email string) string {
	t.Helper()
	resp, body := f.do(t, "POST", "/api/auth/login", sid, map[string]string{"email": email, "password": auth.SeedPassword})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, resp.StatusCode, body)
	}
	next := resp.Header.Get(SessionHeader)
	if next == "" || next == sid {
		t.Fatalf("login %s: session id not reissued (got %q)", email, next)
	}
	return next
}

func decode(t *testing.T, b []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}

func TestLoginAndCurrentUser(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, "POST", "/api/auth/login", "s1", map[string]string{"email": "student@jobhive.com", "password": "wrong"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password: status %d", resp.StatusCode)
	}
	var msg struct{ Message string }
	decode(t, body, &msg)
	if msg.Message != "Invalid email or password" {
		t.Errorf("message = %q", msg.Message)
	}

	if resp, _ := f.do(t, "GET", "/api/auth/user", "s1", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("user before login: status %d, want 401", resp.StatusCode)
	}

	s1 := f.login(t, "s1", "student@jobhive.com")
	resp, body = f.do(t, "GET", "/api/auth/user", s1, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("user after login: status %d", resp.StatusCode)
	}
	var u domain.User
	decode(t, body, &u)
	if u.Role != domain.RoleStudent || u.Email != "student@jobhive.com" {
		t.Errorf("current user = %+v", u)
	}

	if resp, _ := f.do(t, "GET", "/api/auth/user", "s1", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("pre-login session id: status %d, want 401", resp.StatusCode)
	}

	if resp, _ := f.do(t, "POST", "/api/auth/logout", s1, nil); resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("logout: status %d", resp.StatusCode)
	}
	if resp, _ := f.do(t, "GET", "/api/auth/user", s1, nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("user after logout: status %d, want 401", resp.StatusCode)
	}
}

func TestSessionMintedWhenMissing(t *testing.T) {
	f := newFixture(t, nil)
	resp, _ := f.do(t, "GET", "/api/jobs", "", nil)
	if resp.Header.Get(SessionHeader) == "" {
		t.Error("no session id issued")
	}
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}

func TestCurrentUserFailure(t *testing.T) {
	f := newFixture(t, brokenDirectory{})
	s1 := f.login(t, "s1", "admin@jobhive.com")

	resp, body := f.do(t, "GET", "/api/auth/user", s1, nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status %d, want 500", resp.StatusCode)
	}
	var msg struct{ Message string }
	decode(t, body, &msg)
	if msg.Message != "Failed to fetch user" {
		t.Errorf("message = %q", msg.Message)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)

	resp, _ := f.do(t, "POST", "/api/auth/register", "s1", map[string]string{
		"email": "employer@jobhive.com", "password": "x", "name": "Dup", "role": "employer",
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("duplicate email: status %d, want 409", resp.StatusCode)
	}

	resp, body := f.do(t, "POST", "/api/auth/register", "s2", map[string]string{
		"email": "new@jobhive.com", "password": "s3cret", "name": "New Student",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: status %d body %s", resp.StatusCode, body)
	}
	var out struct{ User domain.User }
	decode(t, body, &out)
	if out.User.Email != "new@jobhive.com" || out.User.Role != domain.RoleStudent {
		t.Errorf("registered user = %+v", out.User)
	}
	s2 := resp.Header.Get(SessionHeader)
	if s2 == "" || s2 == "s2" {
		t.Fatalf("session id not reissued on register: %q", s2)
	}
	if resp, _ := f.do(t, "GET", "/api/auth/user", s2, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("new account is not signed in: status %d", resp.StatusCode)
	}
	if resp, _ := f.do(t, "GET", "/api/auth/user", "s2", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("pre-register session id: status %d, want 401", resp.StatusCode)
	}
}

func TestRegisterRefusesAdminRole(t *testing.T) {
	f := newFixture(t, nil)

	for _, role := range []string{"admin", "ADMIN", "superuser"} {
		resp, body := f.do(t, "POST", "/api/auth/register", "walk-in", map[string]string{
			"email": "boss-" + role + "@jobhive.com", "password": "x", "role": role,
		})
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("role %q: status %d body %s, want 400", role, resp.StatusCode, body)
		}
	}
	if resp, _ := f.do(t, "GET", "/api/admin/postings", "walk-in", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("admin postings after refused sign-up: status %d, want 401", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/auth/login", "walk-in", map[string]string{"email": "boss-admin@jobhive.com", "password": "x"}); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("refused account can sign in: status %d", resp.StatusCode)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, nil)
	if resp, _ := f.do(t, "PATCH", "/api/auth/profile", "s1", map[string]string{"title": "x"}); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("signed out: status %d, want 401", resp.StatusCode)
	}

	s1 := f.login(t, "s1", "student@jobhive.com")
	resp, body := f.do(t, "PATCH", "/api/auth/profile", s1, map[string]string{"title": "Graduate"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct{ User domain.User }
	decode(t, body, &out)
	if out.User.Title != "Graduate" || out.User.Name != "Student User" {
		t.Errorf("patched user = %+v", out.User)
	}
}

func TestUpdateProfileReachesDirectory(t *testing.T) {
	dir := newMemDirectory()
	f := newFixture(t, dir)
	s1 := f.login(t, "s1", "student@jobhive.com")

	if resp, _ := f.do(t, "PATCH", "/api/auth/profile", s1, map[string]string{"title": "Graduate"}); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("patch: status %d", resp.StatusCode)
	}
	resp, body := f.do(t, "GET", "/api/auth/user", s1, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("user: status %d", resp.StatusCode)
	}
	var u domain.User
	decode(t, body, &u)
	if u.Title != "Graduate" {
		t.Errorf("current user title = %q, want Graduate", u.Title)
	}
}

func TestUpdateProfileDirectoryFailure(t *testing.T) {
	f := newFixture(t, brokenDirectory{})
	s1 := f.login(t, "s1", "student@jobhive.com")

	resp, body := f.do(t, "PATCH", "/api/auth/profile", s1, map[string]string{"title": "Graduate"})
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status %d, want 500", resp.StatusCode)
	}
	var msg struct{ Message string }
	decode(t, body, &msg)
	if msg.Message != "Failed to update profile" {
		t.Errorf("message = %q", msg.Message)
	}
}

func TestDashboardByRole(t *testing.T) {
	f := newFixture(t, nil)
	tests := []struct {
		email   string
		message string
		keys    []string
	}{
		{"student@jobhive.com", "Student Dashboard", []string{"appliedJobs", "savedJobs", "recentSearches"}},
		{"employer@jobhive.com", "Employer Dashboard", []string{"postedJobs", "applications", "analytics"}},
		{"admin@jobhive.com", "Admin Dashboard", []string{"stats"}},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			sid := "dash-" + tt.email
			sid = f.login(t, sid, tt.email)
			resp, body := f.do(t, "GET", "/api/dashboard", sid, nil)
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status %d", resp.StatusCode)
			}
			var m map[string]json.RawMessage
			decode(t, body, &m)
			var got string
			decode(t, m["message"], &got)
			if got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
			for _, k := range tt.keys {
				if v, ok := m[k]; !ok || string(v) == "null" {
					t.Errorf("%s missing or null in %s", k, body)
				}
			}
		})
	}

	if resp, _ := f.do(t, "GET", "/api/dashboard", "anon", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous dashboard: status %d, want 401", resp.StatusCode)
	}
}

func TestListJobs(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, "GET", "/api/jobs", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var home listingResp
	decode(t, body, &home)
	if len(home.Jobs) != usecase.HomePageLimit || !home.HasMore {
		t.Errorf("home listing: %d jobs, hasMore %v", len(home.Jobs), home.HasMore)
	}

	_, body = f.do(t, "GET", "/api/jobs?full=true", "", nil)
	var full listingResp
	decode(t, body, &full)
	if len(full.Jobs) != len(repository.SeedJobs()) || full.HasMore {
		t.Errorf("full listing: %d jobs, hasMore %v", len(full.Jobs), full.HasMore)
	}

	_, body = f.do(t, "GET", "/api/jobs?search=figma&full=true", "", nil)
	var figma listingResp
	decode(t, body, &figma)
	if figma.Total == 0 {
		t.Fatal("no Figma jobs")
	}
	for _, j := range figma.Jobs {
		if !containsFold(j.Skills, "figma") && !strings.Contains(strings.ToLower(j.Title), "figma") {
			t.Errorf("job %d does not mention figma", j.ID)
		}
	}

	_, body = f.do(t, "GET", "/api/jobs?search=nothing-matches-this", "", nil)
	var none listingResp
	decode(t, body, &none)
	if !none.Empty || none.ResetFilters != "/api/jobs" || none.Jobs == nil {
		t.Errorf("empty listing = %+v", none)
	}
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), want) {
			return true
		}
	}
	return false
}

func TestStudentActivity(t *testing.T) {
	f := newFixture(t, nil)
	s1 := f.login(t, "s1", "student@jobhive.com")

	if resp, _ := f.do(t, "POST", "/api/jobs/2/save", s1, nil); resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("save: status %d", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/jobs/999/apply", s1, nil); resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("apply unknown job: status %d, want 404", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/jobs/abc/apply", s1, nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("apply bad id: status %d, want 400", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/jobs/1/apply", s1, nil); resp.StatusCode != fiber.StatusCreated {
		t.Errorf("apply: status %d", resp.StatusCode)
	}
	f.do(t, "GET", "/api/jobs?search=React", s1, nil)

	_, body := f.do(t, "GET", "/api/dashboard", s1, nil)
	var d usecase.StudentDashboard
	decode(t, body, &d)
	if len(d.SavedJobs) != 1 || d.SavedJobs[0].ID != 2 {
		t.Errorf("savedJobs = %+v", d.SavedJobs)
	}
	if len(d.AppliedJobs) != 1 || d.AppliedJobs[0].ID != 1 {
		t.Errorf("appliedJobs = %+v", d.AppliedJobs)
	}
	if len(d.RecentSearches) != 1 || d.RecentSearches[0] != "React" {
		t.Errorf("recentSearches = %v", d.RecentSearches)
	}

	e1 := f.login(t, "e1", "employer@jobhive.com")
	if resp, _ := f.do(t, "GET", "/api/saved-jobs", e1, nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("employer saved-jobs: status %d, want 403", resp.StatusCode)
	}
}

func TestResumeRoutes(t *testing.T) {
	f := newFixture(t, nil)

	if resp, _ := f.do(t, "GET", "/api/resume", "s1", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous resume: status %d, want 401", resp.StatusCode)
	}
	e1 := f.login(t, "e1", "employer@jobhive.com")
	if resp, _ := f.do(t, "GET", "/api/resume", e1, nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("employer resume: status %d, want 403", resp.StatusCode)
	}

	s1 := f.login(t, "s1", "student@jobhive.com")
	f.do(t, "PATCH", "/api/resume", s1, map[string]string{"firstName": "Ada"})
	resp, body := f.do(t, "PATCH", "/api/resume", s1, map[string]string{"lastName": "Lovelace"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("patch: status %d body %s", resp.StatusCode, body)
	}
	var data domain.ResumeData
	decode(t, body, &data)
	if data.FirstName != "Ada" || data.LastName != "Lovelace" {
		t.Errorf("merged resume = %+v", data)
	}

	if resp, _ := f.do(t, "PATCH", "/api/resume", s1, map[string]int{"firstName": 7}); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("invalid field: status %d, want 400", resp.StatusCode)
	}
	if resp, _ := f.do(t, "PUT", "/api/resume/template", s1, map[string]string{"template": "retro"}); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown template: status %d, want 400", resp.StatusCode)
	}
	if resp, _ := f.do(t, "PUT", "/api/resume/template", s1, map[string]string{"template": "creative"}); resp.StatusCode != fiber.StatusOK {
		t.Errorf("set template: status %d", resp.StatusCode)
	}

	resp, body = f.do(t, "GET", "/api/resume/preview", s1, nil)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "resume-to-print") {
		t.Errorf("preview: status %d", resp.StatusCode)
	}

	resp, body = f.do(t, "POST", "/api/resume/export", s1, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("export: status %d body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "Ada_Lovelace_creative_resume.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if p := resp.Header.Get("X-PDF-Pages"); p != "2" {
		t.Errorf("X-PDF-Pages = %q, want 2", p)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("body is not the rendered PDF")
	}
}

func TestPostingModeration(t *testing.T) {
	f := newFixture(t, nil)
	e1 := f.login(t, "e1", "employer@jobhive.com")
	a1 := f.login(t, "a1", "admin@jobhive.com")
	s1 := f.login(t, "s1", "student@jobhive.com")

	posting := map[string]interface{}{
		"title": "Backend Intern", "type": "Internship", "location": "Remote",
		"description": "Build APIs", "requirements": "Go",
	}
	if resp, _ := f.do(t, "POST", "/api/postings", s1, posting); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("student posting: status %d, want 403", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/postings", e1, map[string]string{"title": "x"}); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("incomplete posting: status %d, want 400", resp.StatusCode)
	}

	resp, body := f.do(t, "POST", "/api/postings", e1, posting)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit: status %d body %s", resp.StatusCode, body)
	}
	var created struct {
		Message string
		Posting domain.JobPosting
	}
	decode(t, body, &created)
	if created.Message != usecase.PostedMessage || created.Posting.Status != domain.PostingPending {
		t.Errorf("created = %+v", created)
	}

	_, body = f.do(t, "GET", "/api/admin/postings?status=pending", a1, nil)
	var list struct{ Postings []domain.JobPosting }
	decode(t, body, &list)
	if len(list.Postings) != 1 {
		t.Fatalf("pending postings = %d, want 1", len(list.Postings))
	}

	path := "/api/admin/postings/" + created.Posting.ID.String()
	if resp, _ := f.do(t, "POST", path+"/approve", e1, nil); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("employer approve: status %d, want 403", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", path+"/approve", a1, nil); resp.StatusCode != fiber.StatusOK {
		t.Errorf("approve: status %d", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", path+"/reject", a1, nil); resp.StatusCode != fiber.StatusConflict {
		t.Errorf("reject approved: status %d, want 409", resp.StatusCode)
	}
	if resp, _ := f.do(t, "POST", "/api/admin/postings/not-a-uuid/approve", a1, nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad id: status %d, want 400", resp.StatusCode)
	}

	_, body = f.do(t, "GET", "/api/dashboard", e1, nil)
	var d usecase.EmployerDashboard
	decode(t, body, &d)
	if d.Analytics.TotalPostings != 1 || d.Analytics.Approved != 1 {
		t.Errorf("analytics = %+v", d.Analytics)
	}
}
