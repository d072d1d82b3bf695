package usecase

import (
	"context"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"

	"go.uber.org/zap"
)

// ActivityService tracks what a student saved, applied to and searched for.
type ActivityService struct {
	catalog JobCatalog
	repo    ActivityRepo
	log     *zap.Logger
}

func NewActivityService(catalog JobCatalog, repo ActivityRepo, log *zap.Logger) *ActivityService {
	return &ActivityService{catalog: catalog, repo: repo, log: log}
}

func (s *ActivityService) SaveJob(ctx context.Context, userID string, jobID int) error {
	if err := s.mustExist(ctx, jobID); err != nil {
		return err
	}
	if err := s.repo.SaveJob(ctx, userID, jobID); err != nil {
		return apperrors.Internal("failed to save job", err)
	}
	return nil
}

func (s *ActivityService) UnsaveJob(ctx context.Context, userID string, jobID int) error {
	if err := s.repo.UnsaveJob(ctx, userID, jobID); err != nil {
		return apperrors.Internal("failed to remove saved job", err)
	}
	return nil
}

func (s *ActivityService) Apply(ctx context.Context, userID string, jobID int) error {
	if err := s.mustExist(ctx, jobID); err != nil {
		return err
	}
	if err := s.repo.Apply(ctx, userID, jobID); err != nil {
		return apperrors.Internal("failed to apply", err)
	}
	s.log.Info("job application recorded", zap.String("user_id", userID), zap.Int("job_id", jobID))
	return nil
}

func (s *ActivityService) SavedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	ids, err := s.repo.SavedJobIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch saved jobs", err)
	}
	return s.resolve(ctx, ids)
}

func (s *ActivityService) AppliedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	ids, err := s.repo.AppliedJobIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch applied jobs", err)
	}
	return s.resolve(ctx, ids)
}

func (s *ActivityService) RecentSearches(ctx context.Context, userID string) ([]string, error) {
	terms, err := s.repo.RecentSearches(ctx, userID, recentSearchLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch recent searches", err)
	}
	return terms, nil
}

func (s *ActivityService) mustExist(ctx context.Context, jobID int) error {
	job, err := s.catalog.Get(ctx, jobID)
	if err != nil {
		return apperrors.Internal("failed to load job", err)
	}
	if job == nil {
		return apperrors.NotFound("job not found", nil)
	}
	return nil
}

// resolve maps ids onto catalog jobs, skipping ids that left the catalog.
func (s *ActivityService) resolve(ctx context.Context, ids []int) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.catalog.Get(ctx, id)
		if err != nil {
			return nil, apperrors.Internal("failed to load job", err)
		}
		if job == nil {
			s.log.Debug("activity references unknown job", zap.Int("job_id", id))
			continue
		}
		out = append(out, *job)
	}
	return out, nil
}
