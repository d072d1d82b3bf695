package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"jobhive/internal/domain"
	"jobhive/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is shared by the three demo accounts.
const SeedPassword = "password123"

type account struct {
	user domain.User
	hash []byte
}

// MemoryAuthenticator checks credentials against the seeded demo accounts
// plus anything registered since start-up.
type MemoryAuthenticator struct {
	mu       sync.RWMutex
	accounts map[string]*account // lower-cased email
	byID     map[string]*account
	latency  time.Duration
	cost     int
}

type Option func(*MemoryAuthenticator)

// WithLatency delays every call, mimicking a remote service.
func WithLatency(d time.Duration) Option {
	return func(m *MemoryAuthenticator) { m.latency = d }
}

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(m *MemoryAuthenticator) { m.cost = cost }
}

func NewMemory(opts ...Option) (*MemoryAuthenticator, error) {
	m := &MemoryAuthenticator{
		accounts: map[string]*account{},
		byID:     map[string]*account{},
		cost:     bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(m)
	}
	for _, u := range SeedUsers() {
		if err := m.add(u, SeedPassword); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MemoryAuthenticator) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	acc, ok := m.accounts[strings.ToLower(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, err
	}
	u := cloneUser(acc.user)
	return &u, nil
}

func (m *MemoryAuthenticator) EmailTaken(ctx context.Context, email string) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}

func (m *MemoryAuthenticator) CreateAccount(ctx context.Context, u domain.User, password string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return m.add(u, password)
}

// GetUser looks an account up by id.
func (m *MemoryAuthenticator) GetUser(_ context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	u := cloneUser(acc.user)
	return &u, nil
}

// Count is the number of known accounts.
func (m *MemoryAuthenticator) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

var ErrEmailTaken = usecase.ErrEmailTaken

func (m *MemoryAuthenticator) add(u domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return err
	}
	key := strings.ToLower(strings.TrimSpace(u.Email))

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[key]; exists {
		return ErrEmailTaken
	}
	acc := &account{user: cloneUser(u), hash: hash}
	m.accounts[key] = acc
	m.byID[u.ID] = acc
	return nil
}

func (m *MemoryAuthenticator) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cloneUser(u domain.User) domain.User {
	if u.Skills != nil {
		u.Skills = append([]string(nil), u.Skills...)
	}
	return u
}

// SeedUsers are the demo student, employer and admin accounts.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:             "1",
			Email:          "student@jobhive.com",
			Name:           "Student User",
			Role:           domain.RoleStudent,
			ProfilePicture: "https://i.pravatar.cc/150?u=student",
			Title:          "Computer Science Student",
			Bio:            "Final year computer science student with a passion for web development and AI. Looking for entry-level opportunities to apply my skills and grow as a developer.",
			Phone:          "+1 (555) 123-4567",
			Location:       "San Francisco, CA",
			Website:        "https://student-portfolio.com",
			Skills:         []string{"JavaScript", "React", "Node.js", "Python", "Machine Learning"},
		},
		{
			ID:             "2",
			Email:          "employer@jobhive.com",
			Name:           "Employer User",
			Role:           domain.RoleEmployer,
			ProfilePicture: "https://i.pravatar.cc/150?u=employer",
			Title:          "HR Manager at TechCorp",
			Bio:            "Representing TechCorp, a leading software development company. We're always looking for fresh talent to join our innovative team.",
			Phone:          "+1 (555) 987-6543",
			Location:       "New York, NY",
			Website:        "https://techcorp.com",
			Skills:         []string{"Recruitment", "Talent Acquisition", "HR Management"},
		},
		{
			ID:             "3",
			Email:          "admin@jobhive.com",
			Name:           "Admin User",
			Role:           domain.RoleAdmin,
			ProfilePicture: "https://i.pravatar.cc/150?u=admin",
			Title:          "Platform Administrator",
			Bio:            "Managing JobHive platform operations and ensuring a smooth experience for all users.",
			Phone:          "+1 (555) 456-7890",
			Location:       "Remote",
			Website:        "https://jobhive.com",
			Skills:         []string{"Platform Administration", "Customer Support", "User Experience"},
		},
	}
}
