package repository

import (
	"context"

	"jobhive/internal/usecase"

	"go.uber.org/zap"
)

// CountFunc reports the size of one source for the admin stats.
type CountFunc func(ctx context.Context) (int, error)

// StatsRepo gathers platform counts from the user, job and posting
// sources. It is best-effort: a failing source is logged and reported as
// zero so the admin dashboard still loads.
type StatsRepo struct {
	users    CountFunc
	jobs     CountFunc
	postings *PostingsRepo
	log      *zap.Logger
}

func NewStatsRepo(users, jobs CountFunc, postings *PostingsRepo, log *zap.Logger) *StatsRepo {
	return &StatsRepo{users: users, jobs: jobs, postings: postings, log: log}
}

func (r *StatsRepo) Stats(ctx context.Context) (usecase.PlatformStats, error) {
	var s usecase.PlatformStats
	s.Users = r.count(ctx, "users", r.users)
	s.Jobs = r.count(ctx, "jobs", r.jobs)

	if r.postings != nil {
		total, pending, err := r.postings.CountByStatus(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return s, ctx.Err()
			}
			r.log.Warn("stats source failed", zap.String("source", "postings"), zap.Error(err))
		} else {
			s.Postings, s.PendingPostings = total, pending
		}
	}
	return s, ctx.Err()
}

func (r *StatsRepo) count(ctx context.Context, source string, fn CountFunc) int {
	if fn == nil {
		return 0
	}
	n, err := fn(ctx)
	if err != nil {
		r.log.Warn("stats source failed", zap.String("source", source), zap.Error(err))
		return 0
	}
	return n
}
