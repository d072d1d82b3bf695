package usecase

import (
	"context"
	"errors"

	"jobhive/internal/domain"

	"github.com/google/uuid"
)

// Storage is a string key/value store. It stands in for the browser's local
// storage, with every key scoped to a session id.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ErrEmailTaken is returned by CreateAccount when the email already has an
// account.
var ErrEmailTaken = errors.New("email already registered")

// Authenticator verifies credentials and owns account creation. Bad
// credentials yield a nil user and a nil error.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, u domain.User, password string) error
}

// UserDirectory holds the canonical user records. GetUser returns
// (nil, nil) when the id is unknown.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, u domain.User) error
}

type JobCatalog interface {
	List(ctx context.Context) ([]domain.Job, error)
	Get(ctx context.Context, id int) (*domain.Job, error)
}

type PostingRepo interface {
	Save(ctx context.Context, p *domain.JobPosting) error
	Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error)
	List(ctx context.Context, status domain.PostingStatus) ([]domain.JobPosting, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.JobPosting, error)
}

type ActivityRepo interface {
	SaveJob(ctx context.Context, userID string, jobID int) error
	UnsaveJob(ctx context.Context, userID string, jobID int) error
	SavedJobIDs(ctx context.Context, userID string) ([]int, error)
	Apply(ctx context.Context, userID string, jobID int) error
	AppliedJobIDs(ctx context.Context, userID string) ([]int, error)
	RecordSearch(ctx context.Context, userID, term string) error
	RecentSearches(ctx context.Context, userID string, limit int) ([]string, error)
}

type PlatformStats struct {
	Users           int `json:"users"`
	Jobs            int `json:"jobs"`
	Postings        int `json:"postings"`
	PendingPostings int `json:"pendingPostings"`
}

type StatsRepo interface {
	Stats(ctx context.Context) (PlatformStats, error)
}

// PDF is a rendered document and its page count.
type PDF struct {
	Data  []byte
	Pages int
}

type Renderer interface {
	RenderResumePDF(ctx context.Context, html, elementID string) (*PDF, error)
}
