package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"
	"jobhive/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PostedMessage = "Your job has been successfully posted and is now live."

type PostingInput struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	Location     string `json:"location"`
	Remote       bool   `json:"remote"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       string `json:"salary,omitempty"`
}

type PostingService struct {
	repo PostingRepo
	log  *zap.Logger
	now  func() time.Time
}

func NewPostingService(repo PostingRepo, log *zap.Logger) *PostingService {
	return &PostingService{repo: repo, log: log, now: time.Now}
}

// Submit queues an employer's posting for moderation.
func (s *PostingService) Submit(ctx context.Context, employerID string, in PostingInput) (*domain.JobPosting, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, apperrors.Internal("failed to encode posting", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, apperrors.Internal("failed to encode posting", err)
	}
	if err := model.ValidatePosting(doc); err != nil {
		return nil, apperrors.InvalidInput("invalid job posting", err)
	}
	jt, _ := domain.ParseJobType(in.Type)

	now := s.now().UTC()
	p := &domain.JobPosting{
		ID:           uuid.New(),
		EmployerID:   employerID,
		Title:        strings.TrimSpace(in.Title),
		Type:         jt,
		Location:     strings.TrimSpace(in.Location),
		Remote:       in.Remote,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       in.Salary,
		Status:       domain.PostingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperrors.Internal("failed to save posting", err)
	}
	s.log.Info("job posted", zap.String("posting_id", p.ID.String()), zap.String("employer_id", employerID))
	return p, nil
}

func (s *PostingService) List(ctx context.Context, status string) ([]domain.JobPosting, error) {
	var st domain.PostingStatus
	if status != "" {
		var ok bool
		if st, ok = domain.ParsePostingStatus(status); !ok {
			return nil, apperrors.InvalidInput("unknown posting status", nil)
		}
	}
	out, err := s.repo.List(ctx, st)
	if err != nil {
		return nil, apperrors.Internal("failed to list postings", err)
	}
	return out, nil
}

func (s *PostingService) Approve(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	return s.moderate(ctx, id, domain.PostingApproved)
}

func (s *PostingService) Reject(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	return s.moderate(ctx, id, domain.PostingRejected)
}

// moderate moves a pending posting to its final status.
func (s *PostingService) moderate(ctx context.Context, id uuid.UUID, to domain.PostingStatus) (*domain.JobPosting, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load posting", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("posting not found", nil)
	}
	if p.Status != domain.PostingPending {
		return nil, apperrors.Conflict("posting was already "+string(p.Status), nil)
	}
	p.Status = to
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperrors.Internal("failed to update posting", err)
	}
	s.log.Info("posting moderated", zap.String("posting_id", id.String()), zap.String("status", string(to)))
	return p, nil
}
